package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// SuiteProgress renders one bar that advances per finished check.
type SuiteProgress struct {
	p   *mpb.Progress
	bar *mpb.Bar

	current atomic.Value
	failed  atomic.Int64
	start   time.Time
	once    sync.Once
}

func NewSuiteProgress(w io.Writer, total int) *SuiteProgress {
	sp := &SuiteProgress{
		p: mpb.New(
			mpb.WithWidth(40),
			mpb.WithOutput(w),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
		start: time.Now(),
	}
	sp.current.Store("")

	sp.bar = sp.p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name("checks  "),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit(" %d/%d", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | failed %d", sp.failed.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				name, _ := sp.current.Load().(string)
				if name == "" {
					return ""
				}
				return " | " + name
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %ds", int(time.Since(sp.start).Seconds()))
			}),
		),
	)

	return sp
}

func (sp *SuiteProgress) Start(name string) {
	sp.current.Store(name)
}

func (sp *SuiteProgress) Done(passed bool) {
	if !passed {
		sp.failed.Add(1)
	}
	sp.bar.Increment()
}

// Close completes the bar even when the suite stopped early. Safe to call
// more than once.
func (sp *SuiteProgress) Close() {
	sp.once.Do(func() {
		sp.current.Store("")
		if !sp.bar.Completed() {
			sp.bar.Abort(false)
		}
		sp.p.Wait()
	})
}
