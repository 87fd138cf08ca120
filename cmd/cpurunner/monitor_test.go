package main

import (
	"bytes"
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbplayer/internal/exit"
	"github.com/retroenv/retrogolib/assert"
)

func writeString(m *monitor, s string) {
	for i := 0; i < len(s); i++ {
		_, _ = m.Write([]byte{s[i]})
	}
}

func TestMonitor_Passed(t *testing.T) {
	m := newMonitor(0)
	writeString(m, "cpu_instrs\n\n01:ok  02:ok  ")
	assert.Equal(t, verdictNone, m.Verdict())
	writeString(m, "\n\nPassed all tests\n")
	assert.Equal(t, verdictPassed, m.Verdict())
	assert.Equal(t, "", m.Stage())
}

func TestMonitor_Failed(t *testing.T) {
	m := newMonitor(0)
	writeString(m, "03:01\nFailed 2 tests")
	// waits for the full line so the count is complete
	assert.Equal(t, verdictNone, m.Verdict())
	writeString(m, "\n")
	assert.Equal(t, verdictFailed, m.Verdict())
	assert.Equal(t, "Failed 2 tests", m.Summary())
	assert.Equal(t, "03:01", m.Stage())
}

func TestMonitor_TailWindow(t *testing.T) {
	m := newMonitor(0)
	writeString(m, string(bytes.Repeat([]byte{'x'}, 300))+"end")
	assert.Equal(t, 256, len(m.Tail()))
	assert.Equal(t, "end", m.Tail()[253:])
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	m := newMonitor(0)

	assert.Equal(t, exit.StatusOK, report(&out, outcome{verdict: verdictPassed}, m))
	assert.Equal(t, exit.StatusTestFailed, report(&out, outcome{verdict: verdictFailed}, m))
	assert.Equal(t, exit.StatusTestFailed, report(&out, outcome{verdict: verdictTimeout}, m))
	assert.Equal(t, exit.StatusGuest, report(&out, outcome{err: exit.InvalidOpcode(0xD3, 0x100)}, m))
}

func TestMonitor_LongLogSplitWrites(t *testing.T) {
	m := newMonitor(0)
	for i := 0; i < 2000; i++ {
		writeString(m, "04:01 ok  04:02 ok\n")
	}
	assert.Equal(t, verdictNone, m.Verdict())
	assert.Equal(t, "04:02", m.Stage())
	_, _ = m.Write([]byte("Pas"))
	assert.Equal(t, verdictNone, m.Verdict())
	_, _ = m.Write([]byte("sed all tests\n"))
	assert.Equal(t, verdictPassed, m.Verdict())
	assert.Equal(t, 256, len(m.Tail()))
}

func TestMonitor_StageFromOpenLine(t *testing.T) {
	m := newMonitor(0)
	writeString(m, "01:05\n02:03 ")
	assert.Equal(t, "02:03", m.Stage())
	writeString(m, "\nFAILED\n")
	assert.Equal(t, verdictFailed, m.Verdict())
	assert.Equal(t, "FAILED", m.Summary())
	assert.Equal(t, "02:03", m.Stage())
}
