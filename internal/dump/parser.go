package dump

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"github.com/roman-kulish/doppler-if/internal/iq"
)

// maxLineSize bounds a single dump line. Frames may batch many samples per line.
const maxLineSize = 1024 * 1024

var digitRun = regexp.MustCompile(`[0-9]+`)

// WithLogger sets the logger for the parser
func WithLogger(logger *slog.Logger) func(p *Parser) {
	return func(p *Parser) {
		p.logger = logger.With(slog.String("component", "dump"))
	}
}

// Parser is the frame parser state machine. Feed it lines one at a time
// (without terminators) and call Finish once the input is exhausted.
type Parser struct {
	state State
	line  int
	i, q  iq.Stream

	logger *slog.Logger
}

// NewParser creates a parser positioned before the first I sentinel, with a discard logger
func NewParser(options ...func(p *Parser)) *Parser {
	p := Parser{
		state:  SeekIHeader,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&p)
	}

	return &p
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// Feed consumes one line.
func (p *Parser) Feed(line string) error {
	p.line++

	kind := Classify(line)
	next, err := Next(p.state, kind)
	if err != nil {
		return &MalformedInputError{Line: p.line, Reason: "unexpected " + kind.String()}
	}
	if next != p.state {
		p.logger.Debug("section changed",
			slog.String("from", p.state.String()),
			slog.String("to", next.String()),
			slog.Int("line", p.line))
		p.state = next
	}

	if kind != LineData {
		return nil
	}

	switch p.state {
	case ReadI:
		p.i, err = appendDigitRuns(p.i, line)
	case ReadQ:
		p.q, err = appendDigitRuns(p.q, line)
	}
	if err != nil {
		return &MalformedInputError{Line: p.line, Reason: "invalid sample", Err: err}
	}

	return nil
}

// Finish signals end of input and returns the collected streams.
func (p *Parser) Finish() (i, q iq.Stream, err error) {
	if _, err = Next(p.state, LineEOF); err != nil {
		p.state = Done
		return nil, nil, &MalformedInputError{Reason: "I raw samples section not found"}
	}
	p.state = Done

	p.logger.Info("raw data extracted",
		slog.Group("stats",
			slog.Int("lines", p.line),
			slog.Int("iSamples", len(p.i)),
			slog.Int("qSamples", len(p.q)),
		))

	return p.i, p.q, nil
}

// Parse reads a radar dump and returns the I and Q sample streams.
// A dump truncated inside a data section is accepted; a dump without an
// I section is not.
func Parse(r io.Reader, options ...func(p *Parser)) (i, q iq.Stream, err error) {
	p := NewParser(options...)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err = p.Feed(scanner.Text()); err != nil {
			return nil, nil, err
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading dump: %w", err)
	}

	return p.Finish()
}

// ParseFile opens and parses the dump stored at path.
func ParseFile(path string, options ...func(p *Parser)) (i, q iq.Stream, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dump '%s': %w", path, err)
	}
	defer f.Close()

	return Parse(f, options...)
}

// appendDigitRuns appends every maximal run of decimal digits found in line.
// Everything else, including signs, is a separator.
func appendDigitRuns(dst iq.Stream, line string) (iq.Stream, error) {
	for _, run := range digitRun.FindAllString(line, -1) {
		v, err := strconv.Atoi(run)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}
