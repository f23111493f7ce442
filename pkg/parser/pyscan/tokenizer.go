package pyscan

import (
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// scanner walks the source bytes once, appending tokens as it goes. It
// never fails: malformed input degrades to TokOther or to unterminated
// string tokens, so every byte sequence yields a usable stream.
type scanner struct {
	src []byte
	out []pysrc.Token
	off int
	bol bool // scanning at the beginning of a line
}

// Tokenize classifies every byte of content into a contiguous,
// non-overlapping token stream covering [0, len(content)).
func Tokenize(content []byte) []pysrc.Token {
	if len(content) == 0 {
		return nil
	}

	s := &scanner{
		src: content,
		// A token per four bytes is a fair guess for typical source.
		out: make([]pysrc.Token, 0, len(content)/4),
		bol: true,
	}
	s.run()

	return s.out
}

func (s *scanner) run() {
	for s.off < len(s.src) {
		s.step()
	}
}

// step consumes one token, handling line-start indentation first.
func (s *scanner) step() {
	if s.bol {
		s.bol = false
		s.scanIndent()
		if s.off >= len(s.src) {
			return
		}
	}

	switch b := s.src[s.off]; {
	case b == '\n' || b == '\r':
		s.scanNewline()
	case b == ' ' || b == '\t':
		s.scanSpace()
	case b == '#':
		s.scanComment()
	case b == '\'' || b == '"':
		s.scanString(s.off)
	case isDigit(b):
		s.scanNumber()
	case isIdentStart(b):
		s.scanWord()
	case isOperator(b):
		s.addByte(pysrc.TokOp)
	default:
		s.addByte(pysrc.TokOther)
	}
}

// scanIndent emits leading spaces and tabs as one TokIndent. A line that
// opens with a non-blank byte gets no indent token at all.
func (s *scanner) scanIndent() {
	start := s.off
	s.skipBlanks()
	if s.off > start {
		s.add(pysrc.TokIndent, start, s.off)
	}
}

// scanSpace emits an interior run of spaces and tabs.
func (s *scanner) scanSpace() {
	start := s.off
	s.skipBlanks()
	s.add(pysrc.TokWhitespace, start, s.off)
}

func (s *scanner) skipBlanks() {
	for s.off < len(s.src) && (s.src[s.off] == ' ' || s.src[s.off] == '\t') {
		s.off++
	}
}

// scanNewline handles LF, CRLF, and a lone CR, then arms indent scanning
// for the next line.
func (s *scanner) scanNewline() {
	start := s.off

	if s.src[s.off] == '\r' {
		s.off++
		if s.off < len(s.src) && s.src[s.off] == '\n' {
			s.off++
		}
	} else {
		s.off++
	}

	s.add(pysrc.TokNewline, start, s.off)
	s.bol = true
}

// scanComment takes '#' through the end of the line, leaving the break
// for scanNewline.
func (s *scanner) scanComment() {
	start := s.off
	for s.off < len(s.src) && s.src[s.off] != '\n' && s.src[s.off] != '\r' {
		s.off++
	}
	s.add(pysrc.TokComment, start, s.off)
}

// scanWord takes an identifier or keyword. A word that spells a string
// prefix (r, b, u, f in any case) and sits directly on a quote is folded
// into the string token instead.
func (s *scanner) scanWord() {
	start := s.off
	for s.off < len(s.src) && isIdentChar(s.src[s.off]) {
		s.off++
	}

	if s.off < len(s.src) &&
		(s.src[s.off] == '\'' || s.src[s.off] == '"') &&
		isStringPrefix(s.src[start:s.off]) {
		s.scanString(start)
		return
	}

	s.add(pysrc.TokName, start, s.off)
}

// scanString consumes a string literal whose token begins at from (the
// prefix letters, if any); the current offset must sit on the opening
// quote. Short strings end at the closing quote or, unterminated, at the
// line break. Long (triple-quoted) strings may span lines and,
// unterminated, run to end of content.
func (s *scanner) scanString(from int) {
	quote := s.src[s.off]

	if s.off+2 < len(s.src) && s.src[s.off+1] == quote && s.src[s.off+2] == quote {
		s.off += 3
		s.scanLongString(quote)
	} else {
		s.off++
		s.scanShortString(quote)
	}

	s.add(pysrc.TokString, from, s.off)
}

func (s *scanner) scanLongString(quote byte) {
	for s.off < len(s.src) {
		switch {
		case s.src[s.off] == '\\':
			s.off += 2
		case s.src[s.off] == quote &&
			s.off+2 < len(s.src) &&
			s.src[s.off+1] == quote &&
			s.src[s.off+2] == quote:
			s.off += 3
			return
		default:
			s.off++
		}
	}

	// An escape at the last byte can overshoot.
	if s.off > len(s.src) {
		s.off = len(s.src)
	}
}

func (s *scanner) scanShortString(quote byte) {
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '\\':
			s.off += 2
		case quote:
			s.off++
			return
		case '\n', '\r':
			// Unterminated: the break stays outside the token.
			return
		default:
			s.off++
		}
	}

	// An escape at the last byte can overshoot.
	if s.off > len(s.src) {
		s.off = len(s.src)
	}
}

// scanNumber is deliberately loose: digits, letters, underscores, and
// dots all continue the token, keeping hex, binary, float, and complex
// forms whole. An exponent sign splits the literal, which structural
// scanning tolerates.
func (s *scanner) scanNumber() {
	start := s.off
	for s.off < len(s.src) && isNumberChar(s.src[s.off]) {
		s.off++
	}
	s.add(pysrc.TokNumber, start, s.off)
}

func (s *scanner) add(kind pysrc.TokenKind, start, end int) {
	s.out = append(s.out, pysrc.Token{Kind: kind, StartOffset: start, EndOffset: end})
}

// addByte emits a one-byte token at the current offset.
func (s *scanner) addByte(kind pysrc.TokenKind) {
	s.add(kind, s.off, s.off+1)
	s.off++
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// isIdentStart reports whether b can start an identifier. Non-ASCII
// bytes count as identifier bytes, a conservative stand-in for Python's
// Unicode identifier rules.
func isIdentStart(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		b >= 0x80
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// isNumberChar reports whether b is accepted inside a numeric literal.
func isNumberChar(b byte) bool {
	return isDigit(b) ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		b == '_' || b == '.'
}

// isOperator reports whether b is a Python operator or delimiter byte.
func isOperator(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '@', '&', '|', '^', '~',
		'<', '>', '=', '!', '(', ')', '[', ']', '{', '}',
		',', ':', '.', ';', '\\':
		return true
	default:
		return false
	}
}

// isStringPrefix reports whether ident spells a string literal prefix,
// meaning up to three bytes drawn from r, b, u, f in either case.
func isStringPrefix(ident []byte) bool {
	if len(ident) == 0 || len(ident) > 3 {
		return false
	}
	for _, b := range ident {
		switch b {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}
