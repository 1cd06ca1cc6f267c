package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nvtkit/telnet/telnet"
)

// optionsByName resolves the human-readable option names a Config's
// starters list names to the telnet package's Option constants. Telnet
// configuration files are for humans; the wire only ever sees the byte.
var optionsByName = map[string]telnet.Option{
	"ECHO":     telnet.OptEcho,
	"SGA":      telnet.OptSGA,
	"STATUS":   telnet.OptStatus,
	"TTYPE":    telnet.OptTType,
	"EOR":      telnet.OptEOR,
	"NAWS":     telnet.OptNAWS,
	"TSPEED":   telnet.OptTSpeed,
	"LFLOW":    telnet.OptLFlow,
	"LINEMODE": telnet.OptLinemode,
	"ZMP":      telnet.OptZMP,
}

// session wires one accepted (or dialed) net.Conn to its own Parser and
// Negotiator, exactly as the core's concurrency model requires:
// two sessions on different connections never touch each other's state.
type session struct {
	id     uuid.UUID
	conn   net.Conn
	logger *zap.Logger

	parser  *telnet.Parser
	neg     *telnet.Negotiator
	diag    *telnet.Diagnostics
	decoder *displayDecoder

	wantLocal  map[byte]bool
	wantRemote map[byte]bool
}

// diagnosticsLogger builds the slog logger telnet.Diagnostics traces
// through, gated by the same level the rest of telnetlog logs at. This is
// deliberately a separate logger from the zap one session uses for
// lifecycle events: the core package only ever speaks slog, and a nil
// logger here keeps tracing a true no-op when it isn't wanted.
func diagnosticsLogger(cfg Config) *slog.Logger {
	if cfg.Logging.Level != "debug" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: telnet.LevelTrace}))
}

func newSession(conn net.Conn, logger *zap.Logger, cfg Config) (*session, error) {
	decoder, err := newDisplayDecoder("US-ASCII")
	if err != nil {
		return nil, fmt.Errorf("building display decoder: %w", err)
	}

	s := &session{
		id:         uuid.New(),
		conn:       conn,
		logger:     logger,
		parser:     telnet.NewParser(),
		neg:        telnet.NewNegotiator(),
		diag:       telnet.NewDiagnostics(diagnosticsLogger(cfg)),
		decoder:    decoder,
		wantLocal:  make(map[byte]bool),
		wantRemote: make(map[byte]bool),
	}

	for _, starter := range cfg.Starters {
		opt, ok := optionsByName[starter.Name]
		if !ok {
			s.logger.Warn("unknown starter option", zap.String("name", starter.Name))
			continue
		}
		if starter.Side == "local" {
			s.wantLocal[opt.Byte()] = true
		} else {
			s.wantRemote[opt.Byte()] = true
		}
	}

	return s, nil
}

// run drives the session to completion: it negotiates the configured
// starter options, then reads until the connection closes, feeding every
// byte through the Parser.
func (s *session) run() {
	defer s.conn.Close()
	defer s.logger.Info("session closed", zap.String("session", s.id.String()))

	s.logger.Info("session opened",
		zap.String("session", s.id.String()),
		zap.String("remote", s.conn.RemoteAddr().String()),
	)

	for opt := range s.wantRemote {
		if err := s.diag.Enable(s.neg, s, opt); err != nil {
			s.logger.Warn("enable failed", zap.Uint8("option", opt), zap.Error(err))
		}
	}

	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		for i := 0; i < n; i++ {
			s.diag.Advance(s.parser, s, buf[i])
		}
		if err != nil {
			return
		}
	}
}

func (s *session) sessionField() zap.Field {
	return zap.String("session", s.id.String())
}

// Data implements telnet.Sink.
func (s *session) Data(data []byte, ignoring bool) {
	text := s.decoder.Decode(data)
	fmt.Println(styleSession.Render(s.id.String()[:8]), styleData.Render(fmt.Sprintf("DATA: %q", text)))
	if ignoring {
		s.logger.Warn("data run truncated by buffer overflow", s.sessionField())
	}
}

// Execute implements telnet.Sink.
func (s *session) Execute(b byte) {
	fmt.Println(styleSession.Render(s.id.String()[:8]), styleExecute.Render(fmt.Sprintf("EXECUTE: 0x%02X", b)))
}

// IACDispatch implements telnet.Sink.
func (s *session) IACDispatch(command byte) {
	name := strconv.Itoa(int(command))
	if c, err := telnet.NewCommand(command); err == nil {
		name = c.String()
	}
	fmt.Println(styleSession.Render(s.id.String()[:8]), styleIAC.Render("IAC "+name))
}

// NegotiateDispatch implements telnet.Sink.
func (s *session) NegotiateDispatch(command byte, option byte) {
	c, err := telnet.NewCommand(command)
	if err != nil {
		s.logger.Warn("negotiation with invalid command byte", zap.Uint8("command", command))
		return
	}
	fmt.Println(styleSession.Render(s.id.String()[:8]),
		styleNegotiate.Render(fmt.Sprintf("%s %s", c, optName(option))))

	if negErr := s.diag.Recv(s.neg, s, c, option); negErr != nil {
		s.logger.Warn("negotiation error", s.sessionField(), zap.Error(negErr))
	}
}

// SubDispatch implements telnet.Sink. The first payload byte is the option
// the subnegotiation belongs to; everything after it is option-specific.
func (s *session) SubDispatch(payload []byte) {
	if len(payload) == 0 {
		return
	}
	option, rest := payload[0], payload[1:]
	opt, _ := telnet.NewOption(option)

	switch option {
	case telnet.OptTType.Byte():
		if isSend, value, ok := telnet.DecodeTTYPE(rest); ok {
			fmt.Println(styleSub.Render(fmt.Sprintf("SUB TTYPE send=%v value=%q", isSend, value)))
		}
	case telnet.OptNAWS.Byte():
		if w, h, ok := telnet.DecodeNAWS(rest); ok {
			fmt.Println(styleSub.Render(fmt.Sprintf("SUB NAWS %dx%d", w, h)))
		}
	case telnet.OptZMP.Byte():
		fields := telnet.DecodeZMP(rest)
		fmt.Println(styleSub.Render(fmt.Sprintf("SUB ZMP %v", fields)))
	default:
		fmt.Println(styleSub.Render(fmt.Sprintf("SUB %s %v", opt, rest)))
	}
}

// Send implements telnet.NegSink: it writes the outbound negotiation
// command straight to the connection. The core never does this itself -
// this is the collaborator's transport-ownership job.
func (s *session) Send(command telnet.Command, option byte) {
	_, err := s.conn.Write([]byte{telnet.IAC.Byte(), command.Byte(), option})
	if err != nil {
		s.logger.Warn("failed to send negotiation command", s.sessionField(), zap.Error(err))
		return
	}
	fmt.Println(styleSession.Render(s.id.String()[:8]), styleNegotiate.Render(fmt.Sprintf("-> %s %s", command, optName(option))))
}

// WantEnabled implements telnet.NegSink.
func (s *session) WantEnabled(option byte) bool {
	return s.wantLocal[option] || s.wantRemote[option]
}

func optName(b byte) string {
	o, err := telnet.NewOption(b)
	if err != nil {
		return fmt.Sprintf("%d", b)
	}
	return o.String()
}
