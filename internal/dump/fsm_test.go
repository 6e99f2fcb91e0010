package dump

import (
	"errors"
	"testing"
)

func TestNext(t *testing.T) {
	testCases := []struct {
		from    State
		kind    LineKind
		to      State
		wantErr bool
	}{
		{SeekIHeader, LineData, SeekIHeader, false},
		{SeekIHeader, LineQSentinel, SeekIHeader, false},
		{SeekIHeader, LineISentinel, ReadI, false},
		{SeekIHeader, LineEOF, Done, true},

		{ReadI, LineData, ReadI, false},
		{ReadI, LineISentinel, ReadI, false},
		{ReadI, LineQSentinel, ReadQ, false},
		{ReadI, LineEOF, Done, false},

		{ReadQ, LineData, ReadQ, false},
		{ReadQ, LineQSentinel, ReadQ, false},
		{ReadQ, LineISentinel, ReadI, false},
		{ReadQ, LineEOF, Done, false},

		{Done, LineData, Done, false},
		{Done, LineEOF, Done, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+" on "+tc.kind.String(), func(t *testing.T) {
			to, err := Next(tc.from, tc.kind)
			if to != tc.to {
				t.Errorf("Expected state %s, got %s", tc.to, to)
			}
			if tc.wantErr != (err != nil) {
				t.Errorf("Expected error=%v, got %v", tc.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		line string
		kind LineKind
	}{
		{ISentinel, LineISentinel},
		{QSentinel, LineQSentinel},
		{"  ------------- I raw samples -------------", LineData}, // trailing space missing
		{ISentinel + " ", LineData},
		{ISentinel + "\r", LineData}, // terminator not stripped
		{"", LineData},
		{"1 2 3", LineData},
	}

	for _, tc := range testCases {
		if kind := Classify(tc.line); kind != tc.kind {
			t.Errorf("Classify(%q) = %s, expected %s", tc.line, kind, tc.kind)
		}
	}
}

func TestParser_Feed(t *testing.T) {
	p := NewParser()

	steps := []struct {
		line  string
		state State
	}{
		{"boot", SeekIHeader},
		{ISentinel, ReadI},
		{"1 2", ReadI},
		{QSentinel, ReadQ},
		{"3", ReadQ},
	}
	for _, step := range steps {
		if err := p.Feed(step.line); err != nil {
			t.Fatalf("Feed(%q): %v", step.line, err)
		}
		if p.State() != step.state {
			t.Fatalf("After %q expected state %s, got %s", step.line, step.state, p.State())
		}
	}

	i, q, err := p.Finish()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.State() != Done {
		t.Errorf("Expected state %s, got %s", Done, p.State())
	}
	if len(i) != 2 || len(q) != 1 {
		t.Errorf("Unexpected samples: I=%v Q=%v", i, q)
	}
}
