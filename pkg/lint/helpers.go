package lint

import (
	"bytes"

	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// Tree queries over the parsed module.

// Classes returns the module's class definitions.
func Classes(root *pysrc.Node) []*pysrc.Node {
	return pysrc.FindByKind(root, pysrc.NodeClass)
}

// Functions returns the module's function definitions.
func Functions(root *pysrc.Node) []*pysrc.Node {
	return pysrc.FindByKind(root, pysrc.NodeFunction)
}

// Definitions returns classes and functions together in document order.
func Definitions(root *pysrc.Node) []*pysrc.Node {
	return pysrc.FindAll(root, func(n *pysrc.Node) bool {
		return n.IsDefinition()
	})
}

// IsClassNode reports whether n is a class definition.
func IsClassNode(n *pysrc.Node) bool {
	return n != nil && n.Kind == pysrc.NodeClass
}

// IsFunctionNode reports whether n is a function definition.
func IsFunctionNode(n *pysrc.Node) bool {
	return n != nil && n.Kind == pysrc.NodeFunction
}

// DefinitionName returns the name of a class or function node, or "".
func DefinitionName(n *pysrc.Node) string {
	if n == nil || !n.IsDefinition() {
		return ""
	}
	return n.Name
}

// KeywordPosition returns the position of a definition's introducing keyword
// ("class" or "def"). Naming diagnostics anchor here rather than at the name.
// The range extends through the end of the name when it sits on the same line.
func KeywordPosition(n *pysrc.Node) pysrc.SourcePosition {
	if n == nil {
		return pysrc.SourcePosition{}
	}
	pos := pysrc.SourcePosition{
		StartLine:   n.Line,
		StartColumn: n.Col,
		EndLine:     n.Line,
		EndColumn:   n.Col,
	}
	if n.File != nil && n.NameStart >= 0 && n.NameEnd > n.NameStart {
		if line, col := n.File.LineAt(n.NameEnd); line == n.Line {
			pos.EndColumn = col
		}
	}
	return pos
}

// Per-line helpers. Lines number from 1. Out-of-range numbers come back as
// zero values rather than panics so rules can probe freely.

func lineSpan(file *pysrc.FileSnapshot, lineNum int) (pysrc.LineInfo, bool) {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return pysrc.LineInfo{}, false
	}
	return file.Lines[lineNum-1], true
}

// LineContent returns one line without its terminator, or nil out of range.
func LineContent(file *pysrc.FileSnapshot, lineNum int) []byte {
	line, ok := lineSpan(file, lineNum)
	if !ok {
		return nil
	}
	return file.Content[line.StartOffset:line.NewlineStart]
}

// LineLength returns the byte length of one line, newline excluded.
func LineLength(file *pysrc.FileSnapshot, lineNum int) int {
	return len(LineContent(file, lineNum))
}

// HasTrailingWhitespace reports whether the line ends in a space or tab.
func HasTrailingWhitespace(file *pysrc.FileSnapshot, lineNum int) bool {
	content := LineContent(file, lineNum)
	if len(content) == 0 {
		return false
	}
	last := content[len(content)-1]
	return last == ' ' || last == '\t'
}

// TrailingWhitespaceRange returns the byte range of a line's trailing
// whitespace, or (-1, -1) when there is none.
func TrailingWhitespaceRange(file *pysrc.FileSnapshot, lineNum int) (int, int) {
	line, ok := lineSpan(file, lineNum)
	if !ok {
		return -1, -1
	}
	content := file.Content[line.StartOffset:line.NewlineStart]
	kept := len(bytes.TrimRight(content, " \t"))
	if kept == len(content) {
		return -1, -1
	}
	return line.StartOffset + kept, line.NewlineStart
}

// IsBlankLine reports whether the line holds only whitespace.
func IsBlankLine(file *pysrc.FileSnapshot, lineNum int) bool {
	content := LineContent(file, lineNum)
	return len(bytes.TrimSpace(content)) == 0
}

// LeadingWhitespaceWidth counts a line's leading whitespace bytes. Tabs
// count as one byte each, matching how Python's lstrip measures.
func LeadingWhitespaceWidth(file *pysrc.FileSnapshot, lineNum int) int {
	content := LineContent(file, lineNum)
	return len(content) - len(bytes.TrimLeft(content, " \t"))
}

// LeadingWhitespaceRange returns the byte range of a line's leading
// whitespace, or (-1, -1) when there is none.
func LeadingWhitespaceRange(file *pysrc.FileSnapshot, lineNum int) (int, int) {
	line, ok := lineSpan(file, lineNum)
	if !ok {
		return -1, -1
	}
	width := LeadingWhitespaceWidth(file, lineNum)
	if width == 0 {
		return -1, -1
	}
	return line.StartOffset, line.StartOffset + width
}

// ImportStatements returns the file's import statements in source order.
func ImportStatements(file *pysrc.FileSnapshot) []pysrc.ImportStmt {
	if file == nil {
		return nil
	}
	return file.Imports
}
