package pysrc

//go:generate stringer -type=TokenKind -trimprefix=Tok

// TokenKind discriminates the scanner's token classes.
type TokenKind uint16

// Every byte of a source file belongs to exactly one kind below; the
// scanner never skips input.
const (
	TokIndent TokenKind = iota // leading whitespace at the start of a line
	TokWhitespace              // interior spaces and tabs
	TokNewline                 // '\n' or '\r\n'

	TokName    // identifier or keyword
	TokNumber  // numeric literal
	TokString  // string literal including prefix and quotes, possibly spanning lines
	TokComment // '#' to end of line
	TokOp      // single operator or delimiter character

	TokOther
)

// Token is a classified span of source bytes. StartOffset is inclusive,
// EndOffset exclusive. A scan's tokens are contiguous, non-overlapping,
// and cover [0, len(content)).
type Token struct {
	Kind        TokenKind
	StartOffset int
	EndOffset   int
}

// Text slices the token's span out of content. Malformed spans yield nil.
func (t Token) Text(content []byte) []byte {
	if t.StartOffset < 0 || t.StartOffset > t.EndOffset || t.EndOffset > len(content) {
		return nil
	}
	return content[t.StartOffset:t.EndOffset]
}

// Len is the token's width in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty reports whether the token spans no bytes.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens reports whether tokens tile the content exactly: the
// first token starts at offset 0, each token begins where the previous
// one ended, and the last token ends at contentLen. An empty slice is
// valid only for empty content.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}

	next := 0
	for _, tok := range tokens {
		if tok.StartOffset != next {
			return false
		}
		next = tok.EndOffset
	}

	return next == contentLen
}
