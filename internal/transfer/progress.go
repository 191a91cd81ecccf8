package transfer

import (
	"io"
	"sync/atomic"
)

// ProgressFunc receives bytes-transferred increments during an upload.
// It is advisory telemetry: implementations must be fast and must never
// block, or they will stall the transfer pipeline feeding the multipart
// uploader.
type ProgressFunc func(delta int64)

// Counter is a thread-safe bytes-transferred accumulator, the standard
// sink for ProgressFunc. The running total is monotonically increasing.
type Counter struct {
	n atomic.Int64
}

func (c *Counter) Add(delta int64) {
	c.n.Add(delta)
}

func (c *Counter) Total() int64 {
	return c.n.Load()
}

// progressReader reports read increments to fn as the uploader consumes
// the body.
type progressReader struct {
	r  io.Reader
	fn ProgressFunc
}

func newProgressReader(r io.Reader, fn ProgressFunc) *progressReader {
	return &progressReader{r: r, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.fn(int64(n))
	}
	return n, err
}
