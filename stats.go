package yololbl

import (
	"fmt"
	"io"
)

// RunStatistics are the counters of a single conversion run. Each counter is incremented once per
// event and never decremented.
type RunStatistics struct {
	ProcessedFiles  int
	SuccessfulFiles int
	ErrorFiles      int
	ProcessedLabels int
	InvalidLabels   int
}

// add records the outcome of one processed file.
func (s *RunStatistics) add(r FileResult) {
	s.ProcessedFiles++
	if r.OK() {
		s.SuccessfulFiles++
	} else {
		s.ErrorFiles++
	}
	s.ProcessedLabels += len(r.Shapes)
	s.InvalidLabels += r.Rejected()
}

// WriteSummary prints the run summary to w. errorLogPath is included if not empty.
func (s RunStatistics) WriteSummary(w io.Writer, errorLogPath string) error {
	_, err := fmt.Fprintf(w, "Conversion complete!\n"+
		"Number of processed files: %d\n"+
		"Number of successful files: %d\n"+
		"Number of error files: %d\n"+
		"Number of processed labels: %d\n"+
		"Number of invalid labels: %d\n",
		s.ProcessedFiles, s.SuccessfulFiles, s.ErrorFiles, s.ProcessedLabels, s.InvalidLabels)
	if err != nil || errorLogPath == "" {
		return err
	}
	_, err = fmt.Fprintf(w, "Detailed error report: %s\n", errorLogPath)
	return err
}
