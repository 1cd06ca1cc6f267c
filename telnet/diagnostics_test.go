package telnet

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_NilLoggerIsNoOp(t *testing.T) {
	d := NewDiagnostics(nil)
	p := NewParser()
	n := NewNegotiator()
	var sink recordingSink
	negSink := newTestNegSink()

	assert.NotPanics(t, func() {
		d.Advance(p, &sink, 'x')
		_ = d.Enable(n, negSink, 1)
		_ = d.Recv(n, negSink, WILL, 1)
		_ = d.Disable(n, negSink, 1)
	})
}

func TestDiagnostics_AdvanceLogsBeforeAndAfterState(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	d := NewDiagnostics(logger)

	p := NewParser()
	var sink recordingSink

	d.Advance(p, &sink, 0x0D)

	require.Len(t, sink.events, 1)
	out := buf.String()
	assert.Contains(t, out, "advance")
	assert.Contains(t, out, "state=ground")
	assert.Contains(t, out, "state=data")
}

func TestDiagnostics_EnableLogsBeforeAndAfter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	d := NewDiagnostics(logger)

	n := NewNegotiator()
	sink := newTestNegSink()

	err := d.Enable(n, sink, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "enable")
	assert.Contains(t, out, "state=before")
	assert.Contains(t, out, "state=after")
}

func TestDiagnostics_RecvLogsCommandName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))
	d := NewDiagnostics(logger)

	n := NewNegotiator()
	sink := newTestNegSink()
	sink.enabled[1] = true

	err := d.Recv(n, sink, WILL, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "WILL")
}
