package pyscan

import (
	"bytes"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// Keywords recognized by the structural scanner.
var (
	kwClass  = []byte("class")
	kwDef    = []byte("def")
	kwAsync  = []byte("async")
	kwImport = []byte("import")
	kwFrom   = []byte("from")
)

// defScanner builds the definition tree and import list from the token stream.
//
// It walks tokens linearly, tracking logical line boundaries. A physical
// line is a logical line start only when the bracket depth is zero and the
// previous line did not end with a backslash continuation. Multi-line
// strings never produce TokNewline, so their interior lines are invisible
// here, matching how Python's grammar treats them.
//
// Definition nesting follows indentation: opening a definition pushes it
// on a stack, and any logical line at the same or shallower indent closes
// deeper definitions. Blank and comment-only lines close nothing.
type defScanner struct {
	snapshot *pysrc.FileSnapshot
	tokens   []pysrc.Token
	content  []byte

	root    *pysrc.Node
	stack   []*pysrc.Node
	imports []pysrc.ImportStmt

	bracketDepth int

	// lastContent is the index of the most recent token that is neither
	// a newline nor line-start indentation. Used to close definition extents.
	lastContent int
}

// scanStructure populates snapshot.Root and snapshot.Imports from its tokens.
func scanStructure(snapshot *pysrc.FileSnapshot) {
	scanner := &defScanner{
		snapshot:    snapshot,
		tokens:      snapshot.Tokens,
		content:     snapshot.Content,
		lastContent: -1,
	}

	scanner.scan()

	snapshot.Root = scanner.root
	snapshot.Imports = scanner.imports
}

// scan runs the single pass over the token stream.
func (s *defScanner) scan() {
	s.root = pysrc.NewModule()
	s.root.Line = 1
	s.root.Col = 0
	if len(s.tokens) > 0 {
		pysrc.SetTokenRange(s.root, 0, len(s.tokens)-1)
	}

	atPhysicalStart := true
	continuation := false

	for i := 0; i < len(s.tokens); i++ {
		if atPhysicalStart {
			atPhysicalStart = false
			if s.bracketDepth == 0 && !continuation {
				s.handleLogicalLine(i)
			}
		}

		token := s.tokens[i]

		switch token.Kind {
		case pysrc.TokNewline:
			atPhysicalStart = true
			continuation = s.endsWithBackslash(i)
		case pysrc.TokIndent:
			// Not line content.
		case pysrc.TokOp:
			s.updateBrackets(token)
			s.lastContent = i
		default:
			s.lastContent = i
		}
	}

	// Close everything still open at end of content.
	s.closeDefs(0)
}

// handleLogicalLine inspects the line starting at token index i.
// It closes definitions dedented past, then opens a class or function
// or records an import if the line introduces one.
func (s *defScanner) handleLogicalLine(i int) {
	first := i
	width := 0

	if s.tokens[i].Kind == pysrc.TokIndent {
		width = s.tokens[i].Len()
		first = i + 1
	}

	if first >= len(s.tokens) {
		return
	}

	switch s.tokens[first].Kind {
	case pysrc.TokNewline, pysrc.TokComment:
		// Blank and comment-only lines never dedent.
		return
	}

	s.closeDefs(width)

	token := s.tokens[first]
	if token.Kind != pysrc.TokName {
		return
	}

	text := token.Text(s.content)

	switch {
	case bytes.Equal(text, kwClass):
		s.openDef(pysrc.NodeClass, first, first, width, false)
	case bytes.Equal(text, kwDef):
		s.openDef(pysrc.NodeFunction, first, first, width, false)
	case bytes.Equal(text, kwAsync):
		defIdx := s.nextMeaningful(first + 1)
		if defIdx >= 0 &&
			s.tokens[defIdx].Kind == pysrc.TokName &&
			bytes.Equal(s.tokens[defIdx].Text(s.content), kwDef) {
			s.openDef(pysrc.NodeFunction, first, defIdx, width, true)
		}
	case bytes.Equal(text, kwImport), bytes.Equal(text, kwFrom):
		s.recordImport(token.StartOffset)
	}
}

// openDef creates a definition node for the keyword at kwIdx.
// The defined name is the next meaningful token after defIdx.
// Malformed definitions without a name are skipped.
func (s *defScanner) openDef(kind pysrc.NodeKind, kwIdx, defIdx, width int, async bool) {
	nameIdx := s.nextMeaningful(defIdx + 1)
	if nameIdx < 0 || s.tokens[nameIdx].Kind != pysrc.TokName {
		return
	}

	keyword := s.tokens[kwIdx]
	name := s.tokens[nameIdx]
	line, col := s.snapshot.LineAt(keyword.StartOffset)

	node := pysrc.NewNode(kind)
	node.Name = string(name.Text(s.content))
	node.Async = async
	node.Line = line
	node.Col = col
	node.NameStart = name.StartOffset
	node.NameEnd = name.EndOffset
	node.Indent = width
	node.FirstToken = kwIdx
	node.LastToken = kwIdx

	parent := s.root
	if len(s.stack) > 0 {
		parent = s.stack[len(s.stack)-1]
	}
	pysrc.AppendChild(parent, node)

	s.stack = append(s.stack, node)
}

// closeDefs pops every open definition at indent >= width, fixing
// each one's token extent at the last content token seen.
func (s *defScanner) closeDefs(width int) {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if top.Indent < width {
			return
		}

		s.stack = s.stack[:len(s.stack)-1]

		last := s.lastContent
		if last < top.FirstToken {
			last = top.FirstToken
		}
		pysrc.SetTokenRange(top, top.FirstToken, last)
	}
}

// recordImport captures the physical line containing offset as an import statement.
func (s *defScanner) recordImport(offset int) {
	line, _ := s.snapshot.LineAt(offset)
	if line < 1 {
		return
	}

	info := s.snapshot.Lines[line-1]
	text := strings.TrimSpace(string(s.snapshot.LineContent(line)))

	s.imports = append(s.imports, pysrc.ImportStmt{
		Line:        line,
		Text:        text,
		StartOffset: info.StartOffset,
		EndOffset:   info.NewlineStart,
	})
}

// nextMeaningful returns the next token index at or after i that is not
// whitespace, or -1 if none remains on the stream.
func (s *defScanner) nextMeaningful(i int) int {
	for ; i < len(s.tokens); i++ {
		if s.tokens[i].Kind != pysrc.TokWhitespace {
			return i
		}
	}
	return -1
}

// updateBrackets adjusts the open bracket depth for an operator token.
func (s *defScanner) updateBrackets(token pysrc.Token) {
	if token.Len() != 1 {
		return
	}

	switch s.content[token.StartOffset] {
	case '(', '[', '{':
		s.bracketDepth++
	case ')', ']', '}':
		if s.bracketDepth > 0 {
			s.bracketDepth--
		}
	}
}

// endsWithBackslash reports whether the token before the newline at
// index i is a backslash continuation.
func (s *defScanner) endsWithBackslash(i int) bool {
	if i == 0 {
		return false
	}

	prev := s.tokens[i-1]
	return prev.Kind == pysrc.TokOp &&
		prev.Len() == 1 &&
		s.content[prev.StartOffset] == '\\'
}
