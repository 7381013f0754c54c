package progress

import "io"

// Callback receives a cumulative progress report. It is called after every
// read that moved data, so implementations should be cheap.
type Callback func(Progress)

// Reader wraps an io.Reader and reports cumulative bytes read through a
// callback.
type Reader struct {
	reader   io.Reader
	callback Callback
	total    int64
	read     int64
}

// NewReader creates a progress-tracking reader. Pass -1 for total when the
// expected size is unknown.
func NewReader(r io.Reader, total int64, cb Callback) *Reader {
	return &Reader{reader: r, callback: cb, total: total}
}

// Read implements io.Reader and reports progress after each read.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.callback != nil {
			r.callback(Progress{Current: r.read, Total: r.total})
		}
	}
	return n, err
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
