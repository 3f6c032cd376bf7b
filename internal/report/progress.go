package report

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress advances once per processed entry. *progressbar.ProgressBar
// implements it.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFunc starts a Progress over total entries.
type ProgressFunc func(total int, description string) Progress

// ProgressBar draws a progress bar with an entry count on w.
func ProgressBar(w io.Writer) ProgressFunc {
	return func(total int, description string) Progress {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w) //nolint:errcheck
			}),
		)
	}
}

func (d Deps) progress(total int, description string) Progress {
	if d.Progress != nil {
		return d.Progress(total, description)
	}
	return ProgressBar(io.Discard)(total, description)
}
