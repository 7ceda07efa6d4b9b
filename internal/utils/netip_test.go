package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote v4", "192.0.2.1:1234", nil, false, "192.0.2.1"},
		{"remote v6", "[2001:db8::1]:443", nil, false, "2001:db8::1"},
		{"mapped v4", "[::ffff:10.0.0.1]:80", nil, false, "10.0.0.1"},
		{"headers ignored without proxy", "192.0.2.1:1", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.1"},
		{"cloudflare first", "127.0.0.1:1", map[string]string{"CF-Connecting-IP": "198.51.100.2", "X-Forwarded-For": "203.0.113.9"}, true, "198.51.100.2"},
		{"left-most forwarded", "127.0.0.1:1", map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.1"}, true, "203.0.113.9"},
		{"real ip", "127.0.0.1:1", map[string]string{"X-Real-IP": "203.0.113.10"}, true, "203.0.113.10"},
		{"garbage header skipped", "127.0.0.1:1", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "203.0.113.11"}, true, "203.0.113.11"},
		{"no headers behind proxy", "127.0.0.1:1", nil, true, "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{" 10.0.0.0/8", "192.168.1.5", "2001:db8::/32", "", "not-an-ip"})

	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.20.30.40", true},
		{"11.0.0.1", false},
		{"192.168.1.5", true},
		{"192.168.1.6", false},
		{"::ffff:192.168.1.5", true},
		{"2001:db8::42", true},
		{"2001:db9::1", false},
		{"", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}

	if !NewIPMatcher([]string{"", "nope"}).IsEmpty() {
		t.Error("matcher with only invalid entries should be empty")
	}
}
