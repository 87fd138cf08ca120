package main

import (
	"regexp"
	"strings"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/ppu"
)

const framePeriod = ppu.TicksPerFrame

type verdict int

const (
	verdictNone verdict = iota
	verdictPassed
	verdictFailed
	verdictTimeout
)

var (
	// failure summary: "Failed 3 tests" or just "Failed"
	failRe = regexp.MustCompile(`(?i)failed(\s+\d+\s+tests?)?`)
	// test markers like "11:01"
	stageRe = regexp.MustCompile(`\b(\d{2}:\d{2})\b`)
)

// monitor collects serial output and recognises the pass and fail reports
// of serial based test ROMs. Output is scanned one line at a time so the
// cost of a write does not grow with the log.
type monitor struct {
	line    []byte
	tail    []byte
	window  int
	stage   string
	verdict verdict
	summary string
}

const passedMarker = "passed"

func newMonitor(window int) *monitor {
	if window < 256 {
		window = 256
	}
	return &monitor{window: window}
}

func (m *monitor) Write(p []byte) (int, error) {
	m.tail = append(m.tail, p...)
	if over := len(m.tail) - m.window; over > 0 {
		m.tail = m.tail[over:]
	}

	for _, c := range p {
		if c == '\n' {
			m.endLine()
			continue
		}
		m.line = append(m.line, c)
		if m.verdict == verdictNone && len(m.line) >= len(passedMarker) &&
			strings.EqualFold(string(m.line[len(m.line)-len(passedMarker):]), passedMarker) {
			m.verdict = verdictPassed
		}
		if over := len(m.line) - m.window; over > 0 {
			m.line = m.line[over:]
		}
	}
	return len(p), nil
}

// endLine checks a completed line for a failure report and test marker.
func (m *monitor) endLine() {
	if s := lastStage(m.line); s != "" {
		m.stage = s
	}
	if m.verdict == verdictNone {
		if sum := failRe.Find(m.line); sum != nil {
			m.verdict = verdictFailed
			m.summary = string(sum)
		}
	}
	m.line = m.line[:0]
}

func lastStage(b []byte) string {
	found := stageRe.FindAll(b, -1)
	if len(found) == 0 {
		return ""
	}
	return string(found[len(found)-1])
}

func (m *monitor) Verdict() verdict { return m.verdict }
func (m *monitor) Summary() string { return m.summary }
func (m *monitor) Tail() string { return string(m.tail) }

// Stage returns the last test marker printed, if any.
func (m *monitor) Stage() string {
	if s := lastStage(m.line); s != "" {
		return s
	}
	return m.stage
}
