package infact

// scanner 是一个对词法扫描器后端行为进行抽象的接口.
// 基于字节切片的 lexer 和基于流的 streamLexer 都实现了此接口,
// 这使得 TokenStream 可以无差别地使用它们.
type scanner interface {
	// scanNext returns the next token, or ok=false once the source is
	// exhausted. A non-nil *ScanError is fatal to the scan.
	scanNext() (tok Token, ok bool, err *ScanError)
	// pos is the byte offset of the next unconsumed character.
	pos() int
	// line is the 1-based line number at pos.
	line() int
	// consumed is the entire raw character sequence read so far.
	consumed() string
}
