package telnet

// Default fixed buffer capacities. See ParserOption for how to override
// them at construction; the defaults match the original implementation
// this package is modeled on.
const (
	DefaultMaxIntermediates = 1024
	DefaultMaxSubs          = 8
)

// parserState is one of the six states the byte-driven FSM can occupy.
// Data and Ground behave identically on input; the split exists only so the
// state machine's entry/exit hooks know when to flush the pending data run.
type parserState byte

const (
	stateGround parserState = iota
	stateData
	stateIacEntry
	stateNegEntry
	stateSubEntry
	stateSubIntermediate
)

var parserStateNames = map[parserState]string{
	stateGround:          "ground",
	stateData:            "data",
	stateIacEntry:        "iac_entry",
	stateNegEntry:        "neg_entry",
	stateSubEntry:        "sub_entry",
	stateSubIntermediate: "sub_intermediate",
}

func (s parserState) String() string {
	if name, ok := parserStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Sink receives the events a Parser emits while consuming a Telnet byte
// stream. Every method is called synchronously, in stream order, from
// within Advance; a Sink must not call back into the Parser that is
// invoking it. Slices passed to data and sub_dispatch-derived calls are
// only valid for the duration of the call.
type Sink interface {
	// Data delivers a contiguous run of printable bytes. ignoring is true
	// when the run was truncated because the intermediates buffer
	// overflowed - the bytes were dropped, not corrupted, and this flag is
	// the only signal of that loss.
	Data(data []byte, ignoring bool)

	// Execute delivers a single control byte (anything outside the
	// printable range that isn't part of an IAC sequence).
	Execute(b byte)

	// IACDispatch delivers an IAC followed by a command that is neither SB
	// nor a negotiation command (e.g. IAC AYT, IAC GA, IAC NOP).
	IACDispatch(command byte)

	// NegotiateDispatch delivers a WILL/WONT/DO/DONT and its option byte.
	NegotiateDispatch(command byte, option byte)

	// SubDispatch delivers a subnegotiation payload: everything between
	// IAC SB and the terminating SE, which means payload[0] is the option
	// byte and payload[1:] is that option's subnegotiation data.
	SubDispatch(payload []byte)
}

// Parser is a byte-at-a-time Telnet protocol state machine. It holds fixed
// capacity buffers and performs no allocation on the hot path; the zero
// value is not usable, use NewParser.
type Parser struct {
	state parserState

	intermediates    []byte
	intermediatesLen int
	ignoring         bool

	negCommand byte

	subs    []byte
	subsLen int
}

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithMaxIntermediates overrides the data-run buffer capacity (default
// DefaultMaxIntermediates). This is a tuning knob, not a fixed constant.
func WithMaxIntermediates(n int) ParserOption {
	return func(p *Parser) {
		p.intermediates = make([]byte, n)
	}
}

// WithMaxSubs overrides the subnegotiation payload buffer capacity (default
// DefaultMaxSubs). The 8-byte default is too small for real TTYPE/ZMP/MCCP
// payloads, so callers handling those should raise it.
func WithMaxSubs(n int) ParserOption {
	return func(p *Parser) {
		p.subs = make([]byte, n)
	}
}

// NewParser returns a Parser in the Ground state with empty buffers.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		intermediates: make([]byte, DefaultMaxIntermediates),
		subs:          make([]byte, DefaultMaxSubs),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset returns the parser to the Ground state with empty buffers, as if
// newly constructed. It does not reallocate the intermediate/sub buffers.
func (p *Parser) Reset() {
	p.state = stateGround
	p.intermediatesLen = 0
	p.ignoring = false
	p.negCommand = 0
	p.subsLen = 0
}

// Advance consumes a single byte, transitioning the state machine and
// invoking zero or more Sink methods before returning. It never fails:
// malformed-looking input is always resolved to some documented event.
func (p *Parser) Advance(sink Sink, b byte) {
	next, dispatch := p.classify(b)
	p.transition(sink, next, dispatch, b)
}

// action identifies what perform must do on a transition, beyond the
// state change itself.
type action byte

const (
	actionNone action = iota
	actionExecute
	actionCollect
	actionIACDispatch
	actionNegLatch
	actionNegDispatch
	actionSubPut
	actionSubDispatch
)

// classify returns the next state and the action to run for byte b, given
// the parser's current state. This is the FSM transition table.
func (p *Parser) classify(b byte) (parserState, action) {
	switch p.state {
	case stateGround, stateData:
		switch {
		case b <= 0x1F:
			return stateData, actionExecute
		case b <= 0x7E:
			return stateGround, actionCollect
		case b == 0xFF:
			return stateIacEntry, actionNone
		default: // 0x7F..0xFE
			return stateData, actionExecute
		}
	case stateIacEntry:
		switch {
		case b == SB.value:
			return stateSubEntry, actionNone
		case b >= WILL.value && b <= DONT.value:
			return stateNegEntry, actionNegLatch
		default:
			return stateGround, actionIACDispatch
		}
	case stateNegEntry:
		return stateGround, actionNegDispatch
	case stateSubEntry, stateSubIntermediate:
		if b == SE.value {
			return stateGround, actionSubDispatch
		}
		return stateSubIntermediate, actionSubPut
	default:
		return stateGround, actionNone
	}
}

// transition moves the parser to next, running whatever Sink calls the step
// implies along the way, then commits the state change.
//
// Entering Data or IacEntry always carries a pending data run behind it (any
// bytes collected while in Ground), so that run is flushed first, before
// this byte's own action runs - a control byte that closes out a data run
// must be seen by the Sink after the data it closes out, not before. The
// buffer is cleared immediately after the flush rather than on some later
// exit, which is equivalent (nothing can repopulate it before the machine
// leaves Data/IacEntry again) and keeps the flush-then-clear pairing local
// to a single Advance call instead of spread across two.
func (p *Parser) transition(sink Sink, next parserState, act action, b byte) {
	if next == stateData || next == stateIacEntry {
		p.flushData(sink)
	}

	p.perform(sink, act, b)

	if next == stateData || next == stateIacEntry {
		p.intermediatesLen = 0
		p.ignoring = false
	}
	if next == stateSubEntry {
		p.subsLen = 0
	}

	p.state = next
}

func (p *Parser) flushData(sink Sink) {
	if p.intermediatesLen > 0 {
		sink.Data(p.intermediates[:p.intermediatesLen], p.ignoring)
	}
}

func (p *Parser) perform(sink Sink, act action, b byte) {
	switch act {
	case actionExecute:
		sink.Execute(b)
	case actionCollect:
		if p.intermediatesLen == len(p.intermediates) {
			p.ignoring = true
		} else {
			p.intermediates[p.intermediatesLen] = b
			p.intermediatesLen++
		}
	case actionIACDispatch:
		sink.IACDispatch(b)
	case actionNegLatch:
		p.negCommand = b
	case actionNegDispatch:
		sink.NegotiateDispatch(p.negCommand, b)
	case actionSubPut:
		if p.subsLen < len(p.subs) {
			p.subs[p.subsLen] = b
			p.subsLen++
		}
	case actionSubDispatch:
		if p.subsLen > 0 {
			sink.SubDispatch(p.subs[:p.subsLen])
		}
	}
}
