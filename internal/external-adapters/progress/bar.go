// Package progress renders download progress with github.com/schollz/progressbar.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter creates one progress bar per download
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out (normally stderr)
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Start returns a bar that advances with every byte written to it.
// total is -1 when the size is unknown, which renders a spinner.
func (r *Reporter) Start(description string, total int64) io.WriteCloser {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionThrottle(80*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
	return &barWriter{bar: bar}
}

type barWriter struct {
	bar *progressbar.ProgressBar
}

func (w *barWriter) Write(p []byte) (int, error) {
	return w.bar.Write(p)
}

func (w *barWriter) Close() error {
	return w.bar.Finish()
}
