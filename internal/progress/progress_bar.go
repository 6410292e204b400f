// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks the number of processed samples.
type Bar interface {
	Add(int) error
	Close() error
}

type ProgressBar struct {
	*progressbar.ProgressBar
}

func NewBar(max int, opts ...progressbar.Option) *ProgressBar {
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions(max, opts...),
	}
}

// NewSamplesBar returns a bar counting up to the total number of samples,
// rendered on the given writer.
func NewSamplesBar(totalSamples int, description string, w io.Writer) *ProgressBar {
	return NewBar(totalSamples,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetItsString("samples"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
