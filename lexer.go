package infact

import (
	"bytes"
	"fmt"
)

// lexer scans an in-memory byte slice. Literals are sliced out of the
// input wherever possible instead of being copied.
type lexer struct {
	cfg          *scanConfig
	input        []byte // 使用 []byte 避免复制
	position     int    // byte offset of ch, or len(input) at end of input
	readPosition int
	ch           byte
	lineNum      int
}

func newLexer(input []byte, cfg *scanConfig) *lexer {
	l := &lexer{cfg: cfg, input: input, lineNum: 1}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

func (l *lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *lexer) peekChar2() byte {
	if l.readPosition+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition+1]
}

func (l *lexer) pos() int {
	return l.position
}

func (l *lexer) line() int {
	return l.lineNum
}

func (l *lexer) consumed() string {
	return BytesToString(l.input[:l.readPosition])
}

func (l *lexer) lexErrorf(pos int, format string, args ...interface{}) *ScanError {
	return &ScanError{
		Pos:     pos,
		Line:    l.lineNum,
		Message: fmt.Sprintf(format, args...),
		Class:   ErrorClassLex,
	}
}

// scanNext classifies the next run of characters. Whitespace and both
// comment styles are skipped first; newlines increment the line counter
// wherever they occur, including inside comments and string literals.
func (l *lexer) scanNext() (Token, bool, *ScanError) {
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
		// A sign binds as part of a number only when immediately
		// adjacent to a digit; otherwise '-' stays a reserved char.
		lit, err := l.readNumber()
		if err != nil {
			return Token{}, false, err
		}
		typ, literal = NUMBER, lit
	case l.cfg.reservedChar(l.ch):
		typ, literal = RESERVED_CHAR, l.input[l.position:l.position+1]
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

func (l *lexer) skip() *ScanError {
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

// readString consumes a double-quoted literal and returns its unquoted
// content. A backslash escapes the byte that follows it. When the
// literal contains no escapes the content is sliced straight out of the
// input.
func (l *lexer) readString() ([]byte, *ScanError) {
	start := l.position
	l.readChar()
	segStart := l.position
	var buf *bytes.Buffer
	for {
		if l.ch == 0 {
			return nil, l.lexErrorf(start, "unterminated string literal starting at stream pos %d", start)
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			if buf == nil {
				buf = &bytes.Buffer{}
			}
			buf.Write(l.input[segStart:l.position])
			l.readChar()
			if l.ch == 0 {
				return nil, l.lexErrorf(start, "unterminated string literal starting at stream pos %d", start)
			}
			if l.ch == '\n' {
				l.lineNum++
			}
			buf.WriteByte(l.ch)
			l.readChar()
			segStart = l.position
			continue
		}
		if l.ch == '\n' {
			l.lineNum++
		}
		l.readChar()
	}
	var literal []byte
	if buf == nil {
		literal = l.input[segStart:l.position]
	} else {
		buf.Write(l.input[segStart:l.position])
		literal = buf.Bytes()
	}
	l.readChar()
	return literal, nil
}

// readNumber consumes an optional sign, a digit run with at most one
// decimal point, and an exponent part when one can complete.
func (l *lexer) readNumber() ([]byte, *ScanError) {
	start := l.position
	if l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	sawDot := false
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if sawDot {
				return nil, l.lexErrorf(start, "malformed number %q: second decimal point", string(l.input[start:l.position+1]))
			}
			sawDot = true
		}
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) {
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		} else if (l.peekChar() == '-' || l.peekChar() == '+') && isDigit(l.peekChar2()) {
			l.readChar()
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[start:l.position], nil
}

// readIdentifier consumes a maximal run of bytes that are neither
// whitespace nor reserved characters nor the quote character.
func (l *lexer) readIdentifier() []byte {
	start := l.position
	for l.ch != 0 && !isSpace(l.ch) && l.ch != '"' && !l.cfg.reservedChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
