package pysrc

// FileSnapshot is one Python file as seen at parse time. Everything a
// rule needs lives here: the untouched bytes, the line table, the token
// stream, the definition tree, and the import list. A snapshot is never
// mutated after the scanner hands it out; fixes produce new content and
// with it a new snapshot.
type FileSnapshot struct {
	// Path is empty for content that never came from disk.
	Path string

	Content []byte
	Lines   []LineInfo
	Tokens  []Token

	// Root is the Module node at the top of the definition tree.
	Root *Node

	// Imports appear in file order, one entry per physical line.
	Imports []ImportStmt
}

// LineInfo records where one line sits in the content. StartOffset is the
// first byte of the line, NewlineStart the first byte of its line break,
// and EndOffset the first byte past the break. A final line with no break
// has NewlineStart equal to EndOffset.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// ImportStmt is one physical line holding an import or from-import
// statement. Line is 1-based, Text carries the statement with surrounding
// whitespace trimmed, and the offsets span the line's content without its
// break.
type ImportStmt struct {
	Line        int
	Text        string
	StartOffset int
	EndOffset   int
}

// NewFileSnapshot wraps content with its line table. Tokens, tree, and
// imports stay empty until a scanner fills them in.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
