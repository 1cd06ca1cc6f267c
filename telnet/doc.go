// Package telnet implements a byte-driven Telnet (RFC 854) protocol parser
// and an RFC 1143 Q Method option negotiator.
//
// The two pieces compose through interfaces, not through each other: a
// Parser turns a raw byte stream into Sink events, and when one of those
// events is a negotiation command, the application forwards it to a
// Negotiator, which may in turn ask a NegSink to send commands back. Neither
// component owns a transport, buffers outbound bytes, or spawns goroutines;
// that is left to whatever wires them to a net.Conn.
package telnet
