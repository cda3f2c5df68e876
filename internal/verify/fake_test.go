package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// fakePage is an in-memory page: headings, text, one meta attribute.
type fakePage struct {
	reachable bool
	headings  []string
	text      string
	readyText string
	inputs    map[string]bool
	metaCount int
	metaValue string
}

type fakeSession struct {
	page *fakePage

	mu       sync.Mutex
	calls    []string
	filled   map[string]string
	fillWait time.Duration
	shotErr  error
	closed   bool
	shotData []byte
}

func (s *fakeSession) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeSession) Goto(url string, timeout time.Duration) error {
	s.record("goto")
	if !s.page.reachable {
		return errors.New("net::ERR_CONNECTION_REFUSED at " + url)
	}
	return nil
}

func (s *fakeSession) ExpectHeading(name string, timeout time.Duration) error {
	s.record("heading")
	for _, h := range s.page.headings {
		if h == name {
			return nil
		}
	}
	return errors.New("timeout: heading " + name)
}

func (s *fakeSession) WaitForText(text string, timeout time.Duration) error {
	s.record("ready")
	if s.page.readyText == text {
		return nil
	}
	return errors.New("timeout: text " + text)
}

func (s *fakeSession) PageText() (string, error) {
	s.record("text")
	return s.page.text, nil
}

func (s *fakeSession) Fill(selector, value string, timeout time.Duration) error {
	s.record("fill")
	s.fillWait = timeout
	if !s.page.inputs[selector] {
		return errors.New("no element for " + selector)
	}
	if s.filled == nil {
		s.filled = map[string]string{}
	}
	s.filled[selector] = value
	return nil
}

func (s *fakeSession) WaitForNetworkIdle(timeout time.Duration) error {
	s.record("idle")
	return nil
}

func (s *fakeSession) Attribute(selector, name string, timeout time.Duration) (string, error) {
	s.record("attribute")
	if s.page.metaCount != 1 {
		return "", errors.New("expected exactly one " + selector)
	}
	return s.page.metaValue, nil
}

func (s *fakeSession) Screenshot(fullPage bool) ([]byte, error) {
	s.record("screenshot")
	if s.shotErr != nil {
		return nil, s.shotErr
	}
	if s.shotData != nil {
		return s.shotData, nil
	}
	return []byte("\x89PNG fake"), nil
}

func (s *fakeSession) Close() error {
	s.record("close")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) called(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeLauncher struct {
	page      *fakePage
	launchErr error
	sessions  []*fakeSession
	shotErr   error
}

func (l *fakeLauncher) Launch(ctx context.Context) (Session, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	s := &fakeSession{page: l.page, shotErr: l.shotErr}
	l.sessions = append(l.sessions, s)
	return s, nil
}

func (l *fakeLauncher) last() *fakeSession {
	return l.sessions[len(l.sessions)-1]
}

type captureLog struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureLog) add(tag, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, tag+" "+fmt.Sprintf(format, args...))
}

func (c *captureLog) Debugf(format string, args ...any) { c.add("DEBUG", format, args...) }
func (c *captureLog) Infof(format string, args ...any)  { c.add("INFO", format, args...) }
func (c *captureLog) Errorf(format string, args ...any) { c.add("ERROR", format, args...) }

func (c *captureLog) contains(sub string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}
