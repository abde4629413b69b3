package utils

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// DecodeBody returns a reader for an HTTP body in the given content
// encoding. Only gzip and identity are understood; anything else is returned
// unchanged. The caller must close the returned reader.
func DecodeBody(body io.ReadCloser, contentEncoding string) (io.ReadCloser, error) {
	if contentEncoding != "gzip" {
		return body, nil
	}

	r, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}
	return &gzipBody{Reader: r, body: body}, nil
}

type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.body.Close()
}
