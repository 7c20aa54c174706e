package xio

import (
	"io"
)

// NewWriteCloser wraps w so it can be handed to APIs that want an
// io.WriteCloser, like the qrcode writers. Close only closes w if it is an
// io.Closer, so an http.ResponseWriter stays usable for the server.
func NewWriteCloser(w io.Writer) io.WriteCloser {
	return &writeCloser{
		Writer: w,
	}
}

type writeCloser struct {
	io.Writer
}

func (wc *writeCloser) Close() error {
	if closer, ok := wc.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
