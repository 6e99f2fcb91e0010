package dump

const (
	// ISentinel marks the beginning of an "I raw samples" section.
	ISentinel = "  ------------- I raw samples ------------- "

	// QSentinel marks the beginning of a "Q raw samples" section.
	QSentinel = "  ------------- Q raw samples ------------- "
)

// State is a frame parser state.
type State int

const (
	SeekIHeader State = iota // discarding preamble until the first I sentinel
	ReadI                    // collecting I samples
	ReadQ                    // collecting Q samples
	Done                     // input exhausted
)

func (s State) String() string {
	switch s {
	case SeekIHeader:
		return "SEEK_I_HEADER"
	case ReadI:
		return "READ_I"
	case ReadQ:
		return "READ_Q"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// LineKind classifies a raw dump line for the state machine.
type LineKind int

const (
	LineData LineKind = iota
	LineISentinel
	LineQSentinel
	LineEOF
)

func (k LineKind) String() string {
	switch k {
	case LineData:
		return "data"
	case LineISentinel:
		return "I sentinel"
	case LineQSentinel:
		return "Q sentinel"
	case LineEOF:
		return "EOF"
	default:
		return "unknown"
	}
}

// Classify returns the kind of a line whose terminator has already been
// stripped. Parse strips both "\n" and "\r\n", and the final line of the input
// needs no terminator, so a sentinel is recognised in all three forms. Any
// other difference, including trailing spaces, makes the line data.
func Classify(line string) LineKind {
	switch line {
	case ISentinel:
		return LineISentinel
	case QSentinel:
		return LineQSentinel
	default:
		return LineData
	}
}

// Next is the single transition function of the frame parser.
//
// Data lines never change state: they are either discarded (SeekIHeader) or
// collected into the current section. Sentinels switch sections, so repeated
// I/Q frames and duplicated sentinels are tolerated. EOF before the first I
// sentinel is the only failing transition.
func Next(s State, k LineKind) (State, error) {
	switch s {
	case SeekIHeader:
		switch k {
		case LineISentinel:
			return ReadI, nil
		case LineEOF:
			return Done, ErrMalformedInput
		default:
			return SeekIHeader, nil
		}

	case ReadI, ReadQ:
		switch k {
		case LineISentinel:
			return ReadI, nil
		case LineQSentinel:
			return ReadQ, nil
		case LineEOF:
			return Done, nil
		default:
			return s, nil
		}

	default:
		return Done, nil
	}
}
