package filesink

import "io"

// countingWriter wraps an io.Writer and tracks the cumulative number of
// bytes handed to it, so size checks never have to stat the file. Not
// safe for concurrent use on its own; callers hold the sink lock.
type countingWriter struct {
	w     io.Writer
	total int64
}

func (c *countingWriter) Write(p []byte) (n int, err error) {
	n, err = c.w.Write(p)
	c.total += int64(n)
	return
}

// count returns the running total without any system call.
func (c *countingWriter) count() int64 {
	return c.total
}
