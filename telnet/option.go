package telnet

import (
	"errors"
	"strconv"
)

// Option is an opaque wrapper over a single Telnet option octet, restricted
// to a fixed set of option codes: 1 through 39, and 70, 85, 86, 93, 255.
// Construction from any other octet fails, including 0 (BINARY).
//
// The name table below is informational only, per spec: it never
// participates in parsing or negotiation semantics.
type Option struct {
	value byte
}

// ErrInvalidOption is returned by NewOption when the supplied byte is not a
// recognized Telnet option code.
var ErrInvalidOption = errors.New("telnet: invalid option byte")

// InvalidOption describes the byte that failed Option construction.
type InvalidOption struct {
	Byte byte
}

func (e InvalidOption) Error() string {
	return "telnet: " + strconv.Itoa(int(e.Byte)) + " is not a valid option byte"
}

func (e InvalidOption) Unwrap() error {
	return ErrInvalidOption
}

// NewOption validates b as a Telnet option octet and returns the wrapped
// Option.
func NewOption(b byte) (Option, error) {
	if !validOptionByte(b) {
		return Option{}, InvalidOption{Byte: b}
	}
	return Option{value: b}, nil
}

func validOptionByte(b byte) bool {
	if b >= 1 && b <= 39 {
		return true
	}
	switch b {
	case 70, 85, 86, 93, 255:
		return true
	default:
		return false
	}
}

// Byte returns the wire-level encoding of the option.
func (o Option) Byte() byte {
	return o.value
}

func (o Option) String() string {
	if name, ok := optionNames[o.value]; ok {
		return name
	}
	return strconv.Itoa(int(o.value))
}

// Named options this package recognizes. This is deliberately a small,
// informational subset of the IANA registry - enough to make logs legible -
// not an exhaustive option catalog.
var (
	OptEcho        = Option{1}
	OptSGA         = Option{3}
	OptStatus      = Option{5}
	OptTimingMark  = Option{6}
	OptTType       = Option{24}
	OptEOR         = Option{25}
	OptNAWS        = Option{31}
	OptTSpeed      = Option{32}
	OptLFlow       = Option{33}
	OptLinemode    = Option{34}
	OptXDisplay    = Option{35}
	OptNewEnviron  = Option{39}
	OptMSSP        = Option{70}
	OptCompress    = Option{85}
	OptCompress2   = Option{86}
	OptZMP         = Option{93}
	OptExtendedOpt = Option{255}
)

var optionNames = map[byte]string{
	0:  "BINARY",
	1:  "ECHO",
	3:  "SGA",
	5:  "STATUS",
	6:  "TIMING-MARK",
	24: "TTYPE",
	25: "EOR",
	31: "NAWS",
	32: "TSPEED",
	33: "LFLOW",
	34: "LINEMODE",
	35: "XDISPLOC",
	39: "NEW-ENVIRON",
	70: "MSSP",
	85: "COMPRESS",
	86: "COMPRESS2",
	93: "ZMP",
	255: "EXOPL",
}
