package utils

import (
	"io"
	"strings"
	"testing"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestDrainClose(t *testing.T) {
	r := strings.NewReader(strings.Repeat("x", 100))
	body := &trackingBody{Reader: r}

	DrainClose(body, 10)

	if !body.closed {
		t.Error("body was not closed")
	}
	if got := r.Len(); got != 90 {
		t.Errorf("unread bytes = %d, want 90", got)
	}
}
