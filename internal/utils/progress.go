package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescPreparing = "Preparing"
	DescCloning   = "Cloning"
)

// NewProgressBar creates a consistently styled progress bar.
// A negative total switches to spinner mode. A nil writer hides the bar.
func NewProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if w == nil {
		opts = append(opts, progressbar.OptionSetVisibility(false))
	} else {
		opts = append(opts, progressbar.OptionSetWriter(w))
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
