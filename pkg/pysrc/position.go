package pysrc

// SourcePosition locates a span by line and column. Lines are 1-based;
// columns are 0-based byte offsets within their line. A negative column
// marks a span that could not be resolved.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// byteSpan resolves the node's token range to byte offsets in the file
// content. ok is false when the node has no file or no recorded tokens.
func (n *Node) byteSpan() (start, end int, ok bool) {
	if n.File == nil || n.FirstToken < 0 || n.LastToken < 0 {
		return 0, 0, false
	}

	toks := n.File.Tokens
	if n.FirstToken >= len(toks) || n.LastToken >= len(toks) {
		return 0, 0, false
	}

	return toks[n.FirstToken].StartOffset, toks[n.LastToken].EndOffset, true
}

// SourcePosition reports the line and column span covered by the node's
// tokens.
func (n *Node) SourcePosition() SourcePosition {
	start, end, ok := n.byteSpan()
	if !ok {
		return SourcePosition{StartColumn: -1, EndColumn: -1}
	}

	startLine, startCol := n.File.LineAt(start)
	endLine, endCol := n.File.LineAt(end)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Text returns the bytes of the file content spanned by the node's tokens,
// or nil when the node is not attached to a file.
func (n *Node) Text() []byte {
	start, end, ok := n.byteSpan()
	if !ok || end > len(n.File.Content) {
		return nil
	}

	return n.File.Content[start:end]
}
