package telnet

// Demux helpers decode the framing of a sub_dispatch payload for a handful
// of common option families. They are pure functions - no state, no
// allocation beyond what the return value itself requires - so a Sink can
// delegate to them instead of re-implementing framing for every
// subnegotiation it cares about. None of them retain the input slice; the
// Sink contract already requires payload to be copied before being stored
// past the call that delivered it, and these helpers honor that too.

// ttypeIS and ttypeSEND are the two RFC 1091 TTYPE subnegotiation leader
// bytes.
const (
	ttypeIS   byte = 0
	ttypeSEND byte = 1
)

// DecodeTTYPE decodes an RFC 1091 TTYPE subnegotiation payload. isSend
// reports whether the peer is asking us to send a terminal type (leader
// byte SEND); otherwise the peer is telling us its terminal type (leader
// byte IS) and value holds it. ok is false for an empty or unrecognized
// payload.
func DecodeTTYPE(payload []byte) (isSend bool, value string, ok bool) {
	if len(payload) == 0 {
		return false, "", false
	}
	switch payload[0] {
	case ttypeSEND:
		return true, "", true
	case ttypeIS:
		return false, string(payload[1:]), true
	default:
		return false, "", false
	}
}

// DecodeNAWS decodes an RFC 1073 NAWS subnegotiation payload: four bytes,
// width then height, each big-endian. ok is false unless the payload is
// exactly four bytes long.
func DecodeNAWS(payload []byte) (width, height int, ok bool) {
	if len(payload) != 4 {
		return 0, 0, false
	}
	width = int(payload[0])<<8 | int(payload[1])
	height = int(payload[2])<<8 | int(payload[3])
	return width, height, true
}

// DecodeZMP splits a ZMP subnegotiation payload into its NUL-terminated
// string fields. ZMP frames always end with a trailing NUL, which produces
// an empty trailing field after a naive split; that field is dropped.
func DecodeZMP(payload []byte) []string {
	if len(payload) == 0 {
		return nil
	}

	var fields []string
	start := 0
	for i, b := range payload {
		if b == 0x00 {
			fields = append(fields, string(payload[start:i]))
			start = i + 1
		}
	}
	if start < len(payload) {
		fields = append(fields, string(payload[start:]))
	}
	return fields
}

// DecodeCompress decodes a COMPRESS/COMPRESS2 (MCCP) subnegotiation, which
// in deployed servers is a single marker byte: WILL to start the
// compressed stream. ok is false for any payload other than exactly one
// byte.
func DecodeCompress(payload []byte) (starting bool, ok bool) {
	if len(payload) != 1 {
		return false, false
	}
	return payload[0] == WILL.value, true
}
