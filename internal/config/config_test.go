package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		def       int
		expected  int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", def: 1, expected: 42},
		{name: "missing uses default", value: "", def: 7, expected: 7},
		{name: "invalid integer", value: "not_a_number", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("getenvInt() should have panicked")
					}
				}()
			}

			result := getenvInt("TEST_INT", tt.def)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		def       time.Duration
		expected  time.Duration
		wantPanic bool
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "missing uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
		{name: "zero disables", value: "0s", def: time.Hour, expected: 0},
		{name: "invalid duration", value: "invalid", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("mustDuration() should have panicked")
					}
				}()
			}

			result := mustDuration("TEST_DURATION", tt.def)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		def       bool
		expected  bool
		wantPanic bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "numeric value", value: "1", def: false, expected: true},
		{name: "missing uses default", value: "", def: true, expected: true},
		{name: "invalid value", value: "maybe", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("mustBool() should have panicked")
					}
				}()
			}

			result := mustBool("TEST_BOOL", tt.def)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single value", input: "value1", expected: []string{"value1"}},
		{name: "multiple values", input: "value1, value2 ,value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quotes and blanks", input: `"a.example", , 'b.example'`, expected: []string{"a.example", "b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STASH_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.RedisEnabled() {
		t.Error("Redis should be disabled without STASH_REDIS_ADDR")
	}
	if cfg.MetadataTimeout != 5*time.Second {
		t.Errorf("MetadataTimeout = %v, want 5s", cfg.MetadataTimeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
}

func TestLoadRejectsTimeouts(t *testing.T) {
	t.Setenv("STASH_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STASH_REQUEST_TIMEOUT", "2s")
	t.Setenv("STASH_METADATA_TIMEOUT", "5s")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	Load()
}

func TestLoadRejectsUserWithoutPassword(t *testing.T) {
	t.Setenv("STASH_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STASH_REDIS_USERNAME", "stash")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked")
		}
	}()
	Load()
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STASH_TEST_DOTENV_A=from-file\nSTASH_TEST_DOTENV_B=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("STASH_TEST_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("STASH_TEST_DOTENV_A") })

	loadDotEnv(path)

	if got := os.Getenv("STASH_TEST_DOTENV_A"); got != "from-file" {
		t.Errorf("A = %q, want from-file", got)
	}
	if got := os.Getenv("STASH_TEST_DOTENV_B"); got != "from-env" {
		t.Errorf("B = %q, want from-env (existing variables win)", got)
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "u", RedisPassword: "p"}

	red := cfg.Redacted()

	if red.RedisPassword == "p" || red.RedisUser == "u" {
		t.Errorf("Redacted() leaked credentials: %+v", red)
	}
	if cfg.RedisPassword != "p" {
		t.Error("Redacted() modified the original")
	}
}
