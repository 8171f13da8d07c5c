package infact

import (
	"io"
)

// TokenStream tokenizes one underlying byte source and exposes the
// result as a forward stream with unlimited backward rewind. Every
// token produced is retained in an append-only buffer, so rewinding
// never re-invokes the scanner; memory grows with the number of
// distinct tokens ever produced, not with rewind depth.
//
// A TokenStream exclusively owns its source and is not safe for
// concurrent use. All Peek and PeekPrev accessors are total: instead of
// failing they report end-of-input sentinel values (empty text, EOF
// type, the current scan position and line).
type TokenStream struct {
	s          scanner
	cfg        *scanConfig
	tokens     []Token
	next       int // index into tokens of the next token to consume
	reachedEnd bool
}

// NewTokenStream constructs a token stream around a readable byte
// source. The first token is scanned eagerly so that the Peek accessors
// are valid immediately; a lexical error in that token is reported here.
func NewTokenStream(r io.Reader, opts ...Option) (*TokenStream, error) {
	cfg := newScanConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	ts := &TokenStream{cfg: cfg, s: newStreamLexer(r, cfg)}
	if err := ts.fill(); err != nil {
		return nil, err
	}
	return ts, nil
}

// NewTokenStreamBytes constructs a token stream over an in-memory byte
// slice. The slice must not be modified for the lifetime of the stream.
func NewTokenStreamBytes(input []byte, opts ...Option) (*TokenStream, error) {
	cfg := newScanConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	ts := &TokenStream{cfg: cfg, s: newLexer(input, cfg)}
	if err := ts.fill(); err != nil {
		return nil, err
	}
	return ts, nil
}

// NewTokenStreamString constructs a token stream over an in-memory
// string, wrapping it as the source without copying.
func NewTokenStreamString(s string, opts ...Option) (*TokenStream, error) {
	return NewTokenStreamBytes(StringToBytes(s), opts...)
}

// SetReservedWords replaces the reserved-word set. It must be called
// before any token is consumed; classification of already-buffered
// tokens is undefined otherwise. Prefer WithReservedWords at
// construction time, which also covers the eagerly scanned first token.
func (ts *TokenStream) SetReservedWords(words []string) {
	ts.cfg.setWords(words)
	// Reclassify the constructor lookahead so the two paths agree.
	for i := range ts.tokens {
		if ts.tokens[i].Type == IDENTIFIER || ts.tokens[i].Type == RESERVED_WORD {
			ts.tokens[i].Type = ts.cfg.classify(ts.tokens[i].Literal)
		}
	}
}

// fill pulls exactly one token from the scanner and appends it.
func (ts *TokenStream) fill() error {
	tok, ok, serr := ts.s.scanNext()
	if serr != nil {
		ts.report(serr)
		return serr
	}
	if !ok {
		ts.reachedEnd = true
		return nil
	}
	ts.tokens = append(ts.tokens, tok)
	return nil
}

func (ts *TokenStream) report(err *ScanError) {
	if ts.cfg.sink != nil {
		ts.cfg.sink(err)
	}
}

// HasNext reports whether a token is available at the cursor. It never
// triggers scanning.
func (ts *TokenStream) HasNext() bool {
	return ts.next < len(ts.tokens)
}

// HasPrev reports whether at least one token has been consumed.
func (ts *TokenStream) HasPrev() bool {
	return ts.next > 0
}

// Next returns the text of the token at the cursor and advances past
// it, keeping one token of lookahead buffered so that the Peek
// accessors stay valid. Calling Next when HasNext reports false is a
// contract violation and returns a usage error; a lexical error while
// scanning the lookahead token is fatal and also surfaces here.
func (ts *TokenStream) Next() (string, error) {
	if !ts.HasNext() {
		err := &ScanError{
			Pos:     ts.s.pos(),
			Line:    ts.s.line(),
			Message: "invoking Next when HasNext returns false",
			Class:   ErrorClassUsage,
		}
		ts.report(err)
		return "", err
	}
	curr := ts.next
	if !ts.reachedEnd && ts.next+1 == len(ts.tokens) {
		if err := ts.fill(); err != nil {
			return "", err
		}
	}
	if ts.next < len(ts.tokens) {
		ts.next++
	}
	return ts.tokens[curr].Text(), nil
}

// Peek returns the text of the token at the cursor, or "" at end of
// input.
func (ts *TokenStream) Peek() string {
	if !ts.HasNext() {
		return ""
	}
	return ts.tokens[ts.next].Text()
}

// PeekType returns the type of the token at the cursor, or EOF at end
// of input.
func (ts *TokenStream) PeekType() TokenType {
	if !ts.HasNext() {
		return EOF
	}
	return ts.tokens[ts.next].Type
}

// PeekStart returns the start offset of the token at the cursor, or the
// current scan position of the underlying source at end of input.
func (ts *TokenStream) PeekStart() int {
	if !ts.HasNext() {
		return ts.s.pos()
	}
	return ts.tokens[ts.next].Start
}

// PeekLineNumber returns the line of the first byte of the token at the
// cursor, or the current line of the underlying source at end of input.
func (ts *TokenStream) PeekLineNumber() int {
	if !ts.HasNext() {
		return ts.s.line()
	}
	return ts.tokens[ts.next].Line
}

// PeekPrev returns the text of the most recently consumed token, or ""
// if none has been consumed.
func (ts *TokenStream) PeekPrev() string {
	if !ts.HasPrev() {
		return ""
	}
	return ts.tokens[ts.next-1].Text()
}

// PeekPrevType returns the type of the most recently consumed token, or
// EOF if none has been consumed.
func (ts *TokenStream) PeekPrevType() TokenType {
	if !ts.HasPrev() {
		return EOF
	}
	return ts.tokens[ts.next-1].Type
}

// PeekPrevStart returns the start offset of the most recently consumed
// token, or 0 if none has been consumed.
func (ts *TokenStream) PeekPrevStart() int {
	if !ts.HasPrev() {
		return 0
	}
	return ts.tokens[ts.next-1].Start
}

// Rewind resets the cursor to the first token. No re-scanning occurs.
func (ts *TokenStream) Rewind() {
	ts.next = 0
}

// RewindBy moves the cursor back by n tokens, clamped to the start of
// the stream. It never fails.
func (ts *TokenStream) RewindBy(n int) {
	if n < 0 {
		return
	}
	if n > ts.next {
		n = ts.next
	}
	ts.next -= n
}

// Putback is a synonym for RewindBy(1).
func (ts *TokenStream) Putback() {
	ts.RewindBy(1)
}

// Pos returns the byte offset just after the most recently consumed
// token, or 0 if no token has been consumed yet.
func (ts *TokenStream) Pos() int {
	if !ts.HasPrev() {
		return 0
	}
	return ts.tokens[ts.next-1].End
}

// LineNumber returns the line of the token at the cursor, or the
// current line of the underlying source at end of input.
func (ts *TokenStream) LineNumber() int {
	return ts.PeekLineNumber()
}

// ConsumedText returns the entire raw character sequence read from the
// source so far, independent of the cursor position.
func (ts *TokenStream) ConsumedText() string {
	return ts.s.consumed()
}
