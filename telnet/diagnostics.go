package telnet

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug for the highest-volume diagnostic
// output this package emits (two lines per byte dispatched). Most
// deployments never enable it; it exists so a caller can ask for it
// explicitly without it crowding out ordinary debug logging.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace is the record an attached logger receives for every Advance, Recv,
// Enable, or Disable step. It is purely observational: nothing about
// parser or negotiator behavior depends on whether a logger is attached,
// matching the hot-path-no-formatting rule that applies to the Parser and
// Negotiator themselves.
type Trace struct {
	Phase string // "advance", "recv", "enable", or "disable"
	State string // a phase-specific descriptor: FSM state name, command name, or "before"/"after"
	Byte  byte   // the input byte, or the option byte for negotiator phases
}

// Diagnostics wraps a Parser and a Negotiator with before/after slog
// tracing. A Diagnostics built with a nil logger (the zero value) is a
// complete no-op: every wrapped call goes straight through with no
// allocation and no formatting, so leaving it attached in production costs
// nothing.
type Diagnostics struct {
	logger *slog.Logger
}

// NewDiagnostics returns a Diagnostics that logs through logger. Passing
// nil is valid and produces a no-op wrapper.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

func (d *Diagnostics) log(t Trace) {
	if d == nil || d.logger == nil {
		return
	}
	d.logger.LogAttrs(context.Background(), LevelTrace, t.Phase,
		slog.String("state", t.State),
		slog.Int("byte", int(t.Byte)),
	)
}

// Advance traces and then runs p.Advance(sink, b): one Trace before the
// byte is consumed (State holds the FSM state before the transition) and
// one after (State holds the state the transition landed on).
func (d *Diagnostics) Advance(p *Parser, sink Sink, b byte) {
	d.log(Trace{Phase: "advance", State: p.state.String(), Byte: b})
	p.Advance(sink, b)
	d.log(Trace{Phase: "advance", State: p.state.String(), Byte: b})
}

// Recv traces and then runs n.Recv(sink, command, option).
func (d *Diagnostics) Recv(n *Negotiator, sink NegSink, command Command, option byte) error {
	if d == nil || d.logger == nil {
		return n.Recv(sink, command, option)
	}
	d.log(Trace{Phase: "recv", State: "before " + command.String(), Byte: option})
	err := n.Recv(sink, command, option)
	d.log(Trace{Phase: "recv", State: "after " + command.String(), Byte: option})
	return err
}

// Enable traces and then runs n.Enable(sink, option).
func (d *Diagnostics) Enable(n *Negotiator, sink NegSink, option byte) error {
	d.log(Trace{Phase: "enable", State: "before", Byte: option})
	err := n.Enable(sink, option)
	d.log(Trace{Phase: "enable", State: "after", Byte: option})
	return err
}

// Disable traces and then runs n.Disable(sink, option).
func (d *Diagnostics) Disable(n *Negotiator, sink NegSink, option byte) error {
	d.log(Trace{Phase: "disable", State: "before", Byte: option})
	err := n.Disable(sink, option)
	d.log(Trace{Phase: "disable", State: "after", Byte: option})
	return err
}
