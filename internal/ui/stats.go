package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type Stats struct {
	Passed      atomic.Int64
	Failed      atomic.Int64
	Screenshots atomic.Int64
	Bytes       atomic.Int64
}

func (s *Stats) Total() int64 {
	return s.Passed.Load() + s.Failed.Load()
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration, human func(int64) string) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Verification Summary:")
	_, _ = fmt.Fprintf(w, "Checks:      %d\n", s.Total())
	_, _ = fmt.Fprintf(w, "Passed:      %d\n", s.Passed.Load())
	_, _ = fmt.Fprintf(w, "Failed:      %d\n", s.Failed.Load())
	_, _ = fmt.Fprintf(w, "Screenshots: %d (%s)\n", s.Screenshots.Load(), human(s.Bytes.Load()))
	_, _ = fmt.Fprintf(w, "Time:        %s\n", elapsed.Round(time.Millisecond))
}
