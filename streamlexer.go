package infact

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// This file contains the stream-based scanner backend.

// streamLexer 是一个从 io.Reader 读取数据的词法扫描器.
// Every byte pulled from the reader is retained in raw so that the
// consumed character sequence can be echoed for diagnostics.
type streamLexer struct {
	cfg      *scanConfig
	r        *bufio.Reader
	ch       byte
	position int // byte offset of ch, or one past the final byte at end of input
	nread    int
	lineNum  int
	raw      bytes.Buffer
	// Reusable buffer for building literals.
	literalBuf bytes.Buffer
}

func newStreamLexer(r io.Reader, cfg *scanConfig) *streamLexer {
	l := &streamLexer{cfg: cfg, r: bufio.NewReader(r), lineNum: 1}
	l.readChar()
	return l
}

func (l *streamLexer) readChar() {
	b, err := l.r.ReadByte()
	if err != nil {
		l.ch = 0
		l.position = l.nread
		return
	}
	l.raw.WriteByte(b)
	l.ch = b
	l.position = l.nread
	l.nread++
}

func (l *streamLexer) peekChar() byte {
	b, err := l.r.Peek(1)
	if err != nil || len(b) < 1 {
		return 0
	}
	return b[0]
}

func (l *streamLexer) peekChar2() byte {
	b, _ := l.r.Peek(2)
	if len(b) < 2 {
		return 0
	}
	return b[1]
}

func (l *streamLexer) pos() int {
	return l.position
}

func (l *streamLexer) line() int {
	return l.lineNum
}

func (l *streamLexer) consumed() string {
	return l.raw.String()
}

func (l *streamLexer) lexErrorf(pos int, format string, args ...interface{}) *ScanError {
	return &ScanError{
		Pos:     pos,
		Line:    l.lineNum,
		Message: fmt.Sprintf(format, args...),
		Class:   ErrorClassLex,
	}
}

func (l *streamLexer) scanNext() (Token, bool, *ScanError) {
	if err := l.skip(); err != nil {
		return Token{}, false, err
	}
	if l.ch == 0 {
		return Token{}, false, nil
	}
	start, line := l.position, l.lineNum
	var typ TokenType
	var literal []byte
	switch {
	case l.ch == '"':
		lit, err := l.readString()
		if err != nil {
			return Token{}, false, err
		}
		typ, literal = STRING, lit
	case (l.ch == '-' || l.ch == '+' || l.ch == '.') && isDigit(l.peekChar()):
		lit, err := l.readNumber()
		if err != nil {
			return Token{}, false, err
		}
		typ, literal = NUMBER, lit
	case l.cfg.reservedChar(l.ch):
		typ, literal = RESERVED_CHAR, []byte{l.ch}
		l.readChar()
	case isDigit(l.ch):
		lit, err := l.readNumber()
		if err != nil {
			return Token{}, false, err
		}
		typ, literal = NUMBER, lit
	default:
		literal = l.readIdentifier()
		typ = l.cfg.classify(literal)
	}
	return Token{Type: typ, Literal: literal, Start: start, End: l.position, Line: line}, true, nil
}

func (l *streamLexer) skip() *ScanError {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			if l.ch == '\n' {
				l.lineNum++
			}
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			start := l.position
			l.readChar()
			l.readChar()
			for {
				if l.ch == 0 {
					return l.lexErrorf(start, "unterminated block comment starting at stream pos %d", start)
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				if l.ch == '\n' {
					l.lineNum++
				}
				l.readChar()
			}
			continue
		}
		return nil
	}
}

func (l *streamLexer) readString() ([]byte, *ScanError) {
	start := l.position
	l.literalBuf.Reset()
	l.readChar()
	for {
		if l.ch == 0 {
			return nil, l.lexErrorf(start, "unterminated string literal starting at stream pos %d", start)
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return nil, l.lexErrorf(start, "unterminated string literal starting at stream pos %d", start)
			}
		}
		if l.ch == '\n' {
			l.lineNum++
		}
		l.literalBuf.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar()
	return l.copyLiteral(), nil
}

func (l *streamLexer) readNumber() ([]byte, *ScanError) {
	start := l.position
	l.literalBuf.Reset()
	if l.ch == '-' || l.ch == '+' {
		l.literalBuf.WriteByte(l.ch)
		l.readChar()
	}
	sawDot := false
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if sawDot {
				l.literalBuf.WriteByte(l.ch)
				return nil, l.lexErrorf(start, "malformed number %q: second decimal point", l.literalBuf.String())
			}
			sawDot = true
		}
		l.literalBuf.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) {
			l.literalBuf.WriteByte(l.ch)
			l.readChar()
			for isDigit(l.ch) {
				l.literalBuf.WriteByte(l.ch)
				l.readChar()
			}
		} else if (l.peekChar() == '-' || l.peekChar() == '+') && isDigit(l.peekChar2()) {
			l.literalBuf.WriteByte(l.ch)
			l.readChar()
			l.literalBuf.WriteByte(l.ch)
			l.readChar()
			for isDigit(l.ch) {
				l.literalBuf.WriteByte(l.ch)
				l.readChar()
			}
		}
	}
	return l.copyLiteral(), nil
}

func (l *streamLexer) readIdentifier() []byte {
	l.literalBuf.Reset()
	for l.ch != 0 && !isSpace(l.ch) && l.ch != '"' && !l.cfg.reservedChar(l.ch) {
		l.literalBuf.WriteByte(l.ch)
		l.readChar()
	}
	return l.copyLiteral()
}

func (l *streamLexer) copyLiteral() []byte {
	c := make([]byte, l.literalBuf.Len())
	copy(c, l.literalBuf.Bytes())
	return c
}
