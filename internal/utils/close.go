package utils

import "io"

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CancelOnClose ties a context cancel to a response body, so closing the
// reader also releases the request that produced it.
type CancelOnClose struct {
	io.ReadCloser
	Cancel func()
}

func (c *CancelOnClose) Close() error {
	if c.Cancel != nil {
		c.Cancel()
	}
	return c.ReadCloser.Close()
}
