package progress

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/streamkit/stream"
)

const defaultChunkSize = 32 * 1024

// File returns a cold stream that reads the named file on each subscription
// and reports cumulative Progress after every chunk. The stream completes
// when the file is fully read and fails if the file cannot be opened or
// read. Unsubscribing cancels the read between chunks.
func File(path string) *stream.Stream[Progress] {
	return FileChunked(path, defaultChunkSize)
}

// FileChunked is File with an explicit chunk size.
func FileChunked(path string, chunkSize int) *stream.Stream[Progress] {
	return stream.FromContextProducer(func(ctx context.Context, r *stream.Reporter[Progress]) error {
		if chunkSize <= 0 {
			return fmt.Errorf("progress: chunk size must be positive, got %d", chunkSize)
		}

		f, err := os.Open(path) //nolint:gosec // caller-chosen path is the purpose
		if err != nil {
			return fmt.Errorf("progress: open %s: %w", path, err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("progress: stat %s: %w", path, err)
		}

		var reportErr error
		pr := NewReader(f, info.Size(), func(p Progress) {
			if reportErr == nil {
				reportErr = r.Report(p)
			}
		})

		buf := make([]byte, chunkSize)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := pr.Read(buf)
			if reportErr != nil {
				return reportErr
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("progress: read %s: %w", path, err)
			}
		}
	})
}
