package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type recordedEvent struct {
	kind     string
	data     []byte
	ignoring bool
	b        byte
	command  byte
	option   byte
}

type recordingSink struct {
	events []recordedEvent
}

func (s *recordingSink) Data(data []byte, ignoring bool) {
	cp := append([]byte(nil), data...)
	s.events = append(s.events, recordedEvent{kind: "data", data: cp, ignoring: ignoring})
}

func (s *recordingSink) Execute(b byte) {
	s.events = append(s.events, recordedEvent{kind: "execute", b: b})
}

func (s *recordingSink) IACDispatch(command byte) {
	s.events = append(s.events, recordedEvent{kind: "iac_dispatch", command: command})
}

func (s *recordingSink) NegotiateDispatch(command byte, option byte) {
	s.events = append(s.events, recordedEvent{kind: "negotiate_dispatch", command: command, option: option})
}

func (s *recordingSink) SubDispatch(payload []byte) {
	cp := append([]byte(nil), payload...)
	s.events = append(s.events, recordedEvent{kind: "sub_dispatch", data: cp})
}

func feed(p *Parser, sink Sink, bytes ...byte) {
	for _, b := range bytes {
		p.Advance(sink, b)
	}
}

func TestParser_DataThenCRLF(t *testing.T) {
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, 'r', 's', 0x0D, 0x0A)

	require.Len(t, sink.events, 3)
	assert.Equal(t, recordedEvent{kind: "data", data: []byte("rs")}, sink.events[0])
	assert.Equal(t, recordedEvent{kind: "execute", b: 0x0D}, sink.events[1])
	assert.Equal(t, recordedEvent{kind: "execute", b: 0x0A}, sink.events[2])
}

func TestParser_HighByteSplitsDataRuns(t *testing.T) {
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, 'r', 0xF6, 's', 0x0D, 0x0A)

	require.Len(t, sink.events, 5)
	assert.Equal(t, recordedEvent{kind: "data", data: []byte("r")}, sink.events[0])
	assert.Equal(t, recordedEvent{kind: "execute", b: 0xF6}, sink.events[1])
	assert.Equal(t, recordedEvent{kind: "data", data: []byte("s")}, sink.events[2])
	assert.Equal(t, recordedEvent{kind: "execute", b: 0x0D}, sink.events[3])
	assert.Equal(t, recordedEvent{kind: "execute", b: 0x0A}, sink.events[4])
}

func TestParser_IACNegotiation(t *testing.T) {
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, IAC.value, WILL.value, OptTType.value)

	require.Len(t, sink.events, 1)
	assert.Equal(t, recordedEvent{kind: "negotiate_dispatch", command: WILL.value, option: OptTType.value}, sink.events[0])
}

func TestParser_IACAYT(t *testing.T) {
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, IAC.value, AYT.value)

	require.Len(t, sink.events, 1)
	assert.Equal(t, recordedEvent{kind: "iac_dispatch", command: AYT.value}, sink.events[0])
}

func TestParser_Subnegotiation(t *testing.T) {
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, IAC.value, SB.value, OptTType.value, ttypeSEND, SE.value)

	require.Len(t, sink.events, 1)
	assert.Equal(t, recordedEvent{kind: "sub_dispatch", data: []byte{OptTType.value, ttypeSEND}}, sink.events[0])
}

func TestParser_SubnegotiationLiteralIACInPayload(t *testing.T) {
	// Any byte other than the SE terminator is taken literally inside a
	// subnegotiation, including 0xFF - see DESIGN.md.
	p := NewParser()
	var sink recordingSink

	feed(p, &sink, IAC.value, SB.value, 0x18, 0x01, 0xFF, SE.value)

	require.Len(t, sink.events, 1)
	assert.Equal(t, []byte{0x18, 0x01, 0xFF}, sink.events[0].data)
}

func TestParser_DataRunOverflowSetsIgnoring(t *testing.T) {
	p := NewParser(WithMaxIntermediates(4))
	var sink recordingSink

	feed(p, &sink, 'a', 'b', 'c', 'd', 'e', 'f', 0x0D)

	require.Len(t, sink.events, 2)
	assert.Equal(t, []byte("abcd"), sink.events[0].data)
	assert.True(t, sink.events[0].ignoring)
	assert.Equal(t, recordedEvent{kind: "execute", b: 0x0D}, sink.events[1])
}

func TestParser_SubOverflowDropsExtraBytes(t *testing.T) {
	p := NewParser(WithMaxSubs(2))
	var sink recordingSink

	feed(p, &sink, IAC.value, SB.value, 0x01, 0x02, 0x03, 0x04, SE.value)

	require.Len(t, sink.events, 1)
	assert.Equal(t, []byte{0x01, 0x02}, sink.events[0].data)
}

func TestParser_ChunkingIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(0, 64).Draw(t, "length")
		input := make([]byte, length)
		for i := range input {
			input[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}

		whole := NewParser()
		var wholeSink recordingSink
		feed(whole, &wholeSink, input...)

		piecemeal := NewParser()
		var pieceSink recordingSink
		for rest := input; len(rest) > 0; {
			n := rapid.IntRange(1, len(rest)).Draw(t, "chunk")
			feed(piecemeal, &pieceSink, rest[:n]...)
			rest = rest[n:]
		}

		assert.Equal(t, wholeSink.events, pieceSink.events,
			"feeding the same bytes in different chunk sizes must produce identical events")
	})
}

func TestParser_BuffersNeverExceedCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(0, 200).Draw(t, "length")
		input := make([]byte, length)
		for i := range input {
			input[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
		}

		p := NewParser()
		var sink recordingSink
		feed(p, &sink, input...)

		assert.LessOrEqual(t, p.intermediatesLen, len(p.intermediates))
		assert.LessOrEqual(t, p.subsLen, len(p.subs))
		for _, ev := range sink.events {
			if ev.kind == "data" {
				assert.LessOrEqual(t, len(ev.data), DefaultMaxIntermediates)
			}
			if ev.kind == "sub_dispatch" {
				assert.LessOrEqual(t, len(ev.data), DefaultMaxSubs)
			}
		}
	})
}
