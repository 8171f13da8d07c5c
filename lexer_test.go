package infact

import (
	"strings"
	"testing"
)

func TestScanNext(t *testing.T) {
	input := `
// a model configuration
f = RankFeatureExtractor(
    arg = "some \"quoted\" value",  // trailing comment
    /*
    block comment
    */
    weights = {-1.5, 2, .5, 1e-3},
    dims = int[],
    enabled = true,
    missing = nullptr
);
`
	// Normalize input to use \n for all line endings to make test deterministic.
	input = strings.ReplaceAll(input, "\r\n", "\n")

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IDENTIFIER, "f"},
		{RESERVED_CHAR, "="},
		{IDENTIFIER, "RankFeatureExtractor"},
		{RESERVED_CHAR, "("},
		{IDENTIFIER, "arg"},
		{RESERVED_CHAR, "="},
		{STRING, `some "quoted" value`},
		{RESERVED_CHAR, ","},
		{IDENTIFIER, "weights"},
		{RESERVED_CHAR, "="},
		{RESERVED_CHAR, "{"},
		{NUMBER, "-1.5"},
		{RESERVED_CHAR, ","},
		{NUMBER, "2"},
		{RESERVED_CHAR, ","},
		{NUMBER, ".5"},
		{RESERVED_CHAR, ","},
		{NUMBER, "1e-3"},
		{RESERVED_CHAR, "}"},
		{RESERVED_CHAR, ","},
		{IDENTIFIER, "dims"},
		{RESERVED_CHAR, "="},
		{RESERVED_WORD, "int[]"},
		{RESERVED_CHAR, ","},
		{IDENTIFIER, "enabled"},
		{RESERVED_CHAR, "="},
		{RESERVED_WORD, "true"},
		{RESERVED_CHAR, ","},
		{IDENTIFIER, "missing"},
		{RESERVED_CHAR, "="},
		{RESERVED_WORD, "nullptr"},
		{RESERVED_CHAR, ")"},
		{RESERVED_CHAR, ";"},
	}

	backends := map[string]func() scanner{
		"bytes":  func() scanner { return newLexer([]byte(input), newScanConfig()) },
		"stream": func() scanner { return newStreamLexer(strings.NewReader(input), newScanConfig()) },
	}

	for name, newScanner := range backends {
		t.Run(name, func(t *testing.T) {
			s := newScanner()
			for i, tt := range tests {
				tok, ok, serr := s.scanNext()
				if serr != nil {
					t.Fatalf("tests[%d] - unexpected scan error: %v", i, serr)
				}
				if !ok {
					t.Fatalf("tests[%d] - unexpected end of input", i)
				}

				if tok.Type != tt.expectedType {
					t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
						i, tt.expectedType, tok.Type)
				}

				if string(tok.Literal) != tt.expectedLiteral {
					t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
						i, tt.expectedLiteral, string(tok.Literal))
				}
			}
			if _, ok, serr := s.scanNext(); ok || serr != nil {
				t.Fatalf("expected clean end of input, got ok=%v err=%v", ok, serr)
			}
		})
	}
}

func TestMinusBinding(t *testing.T) {
	// '-' binds as a sign only when immediately adjacent to a digit.
	s := newLexer([]byte("-5"), newScanConfig())
	tok, ok, serr := s.scanNext()
	if serr != nil || !ok {
		t.Fatalf("unexpected scan result: ok=%v err=%v", ok, serr)
	}
	if tok.Type != NUMBER || string(tok.Literal) != "-5" {
		t.Fatalf("expected NUMBER -5, got %s", tok)
	}

	s = newLexer([]byte("- 5"), newScanConfig())
	tok, _, _ = s.scanNext()
	if tok.Type != RESERVED_CHAR || string(tok.Literal) != "-" {
		t.Fatalf("expected RESERVED_CHAR -, got %s", tok)
	}
	tok, _, _ = s.scanNext()
	if tok.Type != NUMBER || string(tok.Literal) != "5" {
		t.Fatalf("expected NUMBER 5, got %s", tok)
	}
}

func TestMalformedNumber(t *testing.T) {
	for _, backend := range []string{"bytes", "stream"} {
		t.Run(backend, func(t *testing.T) {
			input := "x = 3.14.15;"
			var s scanner
			if backend == "bytes" {
				s = newLexer([]byte(input), newScanConfig())
			} else {
				s = newStreamLexer(strings.NewReader(input), newScanConfig())
			}
			s.scanNext() // x
			s.scanNext() // =
			_, _, serr := s.scanNext()
			if serr == nil {
				t.Fatal("expected a scan error for a number with two decimal points")
			}
			if serr.Class != ErrorClassLex {
				t.Errorf("error class wrong. expected=%v, got=%v", ErrorClassLex, serr.Class)
			}
			if !strings.Contains(serr.Message, "second decimal point") {
				t.Errorf("unexpected error message: %q", serr.Message)
			}
			if serr.Pos != 4 {
				t.Errorf("error position wrong. expected=4, got=%d", serr.Pos)
			}
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, `"abc\`} {
		s := newLexer([]byte(input), newScanConfig())
		_, _, serr := s.scanNext()
		if serr == nil {
			t.Fatalf("input %q: expected a scan error", input)
		}
		if !strings.Contains(serr.Message, "unterminated string literal") {
			t.Errorf("input %q: unexpected error message: %q", input, serr.Message)
		}
		if serr.Pos != 0 {
			t.Errorf("input %q: error position wrong. expected=0, got=%d", input, serr.Pos)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	s := newStreamLexer(strings.NewReader("a /* never closed"), newScanConfig())
	if _, ok, serr := s.scanNext(); !ok || serr != nil {
		t.Fatalf("unexpected scan result: ok=%v err=%v", ok, serr)
	}
	_, _, serr := s.scanNext()
	if serr == nil {
		t.Fatal("expected a scan error for an unclosed block comment")
	}
	if !strings.Contains(serr.Message, "unterminated block comment") {
		t.Errorf("unexpected error message: %q", serr.Message)
	}
}

func TestTokenPositions(t *testing.T) {
	input := "foo = 3.14;"
	tests := []struct {
		typ        TokenType
		literal    string
		start, end int
	}{
		{IDENTIFIER, "foo", 0, 3},
		{RESERVED_CHAR, "=", 4, 5},
		{NUMBER, "3.14", 6, 10},
		{RESERVED_CHAR, ";", 10, 11},
	}
	s := newLexer([]byte(input), newScanConfig())
	for i, tt := range tests {
		tok, ok, serr := s.scanNext()
		if serr != nil || !ok {
			t.Fatalf("tests[%d] - unexpected scan result: ok=%v err=%v", i, ok, serr)
		}
		if tok.Type != tt.typ || string(tok.Literal) != tt.literal {
			t.Fatalf("tests[%d] - token wrong. expected=(%s %q), got=%s", i, tt.typ, tt.literal, tok)
		}
		if tok.Start != tt.start || tok.End != tt.end {
			t.Errorf("tests[%d] - span wrong. expected=[%d,%d), got=[%d,%d)", i, tt.start, tt.end, tok.Start, tok.End)
		}
		if tok.Line != 1 {
			t.Errorf("tests[%d] - line wrong. expected=1, got=%d", i, tok.Line)
		}
	}
}

func TestLineNumbers(t *testing.T) {
	input := "a\n/* x\ny */\nb \"s1\ns2\" c"
	wantLines := []struct {
		literal string
		line    int
	}{
		{"a", 1},
		{"b", 4},
		{"s1\ns2", 4},
		{"c", 5},
	}
	for _, backend := range []string{"bytes", "stream"} {
		t.Run(backend, func(t *testing.T) {
			var s scanner
			if backend == "bytes" {
				s = newLexer([]byte(input), newScanConfig())
			} else {
				s = newStreamLexer(strings.NewReader(input), newScanConfig())
			}
			for i, want := range wantLines {
				tok, ok, serr := s.scanNext()
				if serr != nil || !ok {
					t.Fatalf("tests[%d] - unexpected scan result: ok=%v err=%v", i, ok, serr)
				}
				if string(tok.Literal) != want.literal {
					t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, want.literal, string(tok.Literal))
				}
				if tok.Line != want.line {
					t.Errorf("tests[%d] - line wrong. expected=%d, got=%d", i, want.line, tok.Line)
				}
			}
		})
	}
}

// TestTokenSpans checks that token spans index the original input: the
// literal of every non-string token equals its raw span, string spans
// include the surrounding quotes, and spans never overlap.
func TestTokenSpans(t *testing.T) {
	input := `a = { "s", -2.5, int[] }; // tail`
	s := newLexer([]byte(input), newScanConfig())
	prevEnd := 0
	for {
		tok, ok, serr := s.scanNext()
		if serr != nil {
			t.Fatalf("unexpected scan error: %v", serr)
		}
		if !ok {
			break
		}
		if tok.Start < prevEnd {
			t.Fatalf("token %s overlaps previous span ending at %d", tok, prevEnd)
		}
		span := input[tok.Start:tok.End]
		if tok.Type == STRING {
			if span[0] != '"' || span[len(span)-1] != '"' {
				t.Errorf("string span %q is not quoted", span)
			}
		} else if span != string(tok.Literal) {
			t.Errorf("span mismatch: span=%q literal=%q", span, string(tok.Literal))
		}
		prevEnd = tok.End
	}
}
