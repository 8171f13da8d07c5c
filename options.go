package infact

// DefaultReservedChars is the punctuation of the object-construction
// grammar. Each of these bytes always forms its own one-character token
// and never merges with neighbors. '-' is included, but yields to the
// numeric interpretation when immediately followed by a digit.
const DefaultReservedChars = "(){},=;/-"

// defaultReservedWords are the literal and type keywords of the
// language. Note that '[' and ']' are not reserved characters, which is
// what lets the array-type markers scan as single identifier-shaped
// runs.
var defaultReservedWords = []string{
	"nullptr",
	"NULL",
	"false",
	"true",
	"bool",
	"int",
	"double",
	"string",
	"bool[]",
	"int[]",
	"double[]",
	"string[]",
}

// scanConfig carries the customizable classification sets shared by a
// TokenStream and its scanner backend.
type scanConfig struct {
	reserved [256]bool
	words    map[string]bool
	sink     ErrorSink
}

func newScanConfig() *scanConfig {
	c := &scanConfig{}
	c.setChars(DefaultReservedChars)
	c.setWords(defaultReservedWords)
	return c
}

func (c *scanConfig) setChars(chars string) {
	c.reserved = [256]bool{}
	for i := 0; i < len(chars); i++ {
		c.reserved[chars[i]] = true
	}
}

func (c *scanConfig) setWords(words []string) {
	c.words = make(map[string]bool, len(words))
	for _, w := range words {
		c.words[w] = true
	}
}

func (c *scanConfig) reservedChar(ch byte) bool {
	return c.reserved[ch]
}

// classify reclassifies an identifier-shaped run as a reserved word
// when it case-sensitively matches a member of the word set.
func (c *scanConfig) classify(literal []byte) TokenType {
	if c.words[BytesToString(literal)] {
		return RESERVED_WORD
	}
	return IDENTIFIER
}

// Option configures a TokenStream at construction time.
type Option func(*scanConfig)

// WithReservedChars replaces the default reserved-character set.
func WithReservedChars(chars string) Option {
	return func(c *scanConfig) {
		c.setChars(chars)
	}
}

// WithReservedWords replaces the default reserved-word set.
func WithReservedWords(words []string) Option {
	return func(c *scanConfig) {
		c.setWords(words)
	}
}

// WithErrorSink installs a sink that observes every fatal ScanError
// before it is returned.
func WithErrorSink(sink ErrorSink) Option {
	return func(c *scanConfig) {
		c.sink = sink
	}
}
