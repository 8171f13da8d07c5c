package infact

import (
	"fmt"
)

// TokenType 标识一个词法单元的类别.
type TokenType string

// Token is a single lexical unit read from the underlying byte source.
// Start and End are byte offsets into the source; End is the offset just
// past the last consumed byte, i.e. the position scanning resumes from.
// Once a Token has been appended to a TokenStream's buffer it is never
// mutated.
type Token struct {
	Type    TokenType
	Literal []byte // 使用 []byte 避免在词法分析阶段分配新字符串
	Start   int
	End     int
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("Line:%d, Start:%d, End:%d, Type:%s, Literal:`%s`", t.Line, t.Start, t.End, t.Type, string(t.Literal))
}

// Text returns the token literal as a string without copying.
// The returned string must not outlive modifications to the literal;
// buffered tokens are immutable, so this is safe for stream clients.
func (t Token) Text() string {
	return BytesToString(t.Literal)
}

const (
	EOF           TokenType = "EOF"
	RESERVED_CHAR TokenType = "RESERVED_CHAR"
	RESERVED_WORD TokenType = "RESERVED_WORD"
	STRING        TokenType = "STRING"
	NUMBER        TokenType = "NUMBER"
	IDENTIFIER    TokenType = "IDENTIFIER"
)

// TypeName returns the fixed display name for a token type, for use in
// diagnostics by downstream consumers.
func TypeName(t TokenType) string {
	if t == "" {
		return string(EOF)
	}
	return string(t)
}
