package utils

import (
	"io"
)

// DrainClose discards up to limit unread bytes so an HTTP connection can go
// back to the pool, then closes rc. Errors are ignored.
func DrainClose(rc io.ReadCloser, limit int64) {
	_, _ = io.CopyN(io.Discard, rc, limit)
	_ = rc.Close()
}
