// Package pyscan provides a Parser implementation using a hand-rolled
// single-pass Python scanner. The scanner is total: any byte sequence
// produces a valid snapshot, so style checks keep working on files that
// would not compile.
package pyscan

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// Parser implements lint.Parser for Python source files.
type Parser struct{}

// New creates a new Python source parser.
func New() *Parser {
	return &Parser{}
}

// FileSnapshot aliases pysrc.FileSnapshot so callers of this package can
// name the result type without a second import.
type FileSnapshot = pysrc.FileSnapshot

// Parse converts raw Python bytes into a fully-populated FileSnapshot:
// line index, token stream, definition tree, and import list. Content is
// cloned up front, so callers may reuse their buffer. The only error
// paths are context cancellation and a token stream that fails the
// coverage invariant, which would be a scanner bug.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	snapshot := pysrc.NewFileSnapshot(path, bytes.Clone(content))
	snapshot.Tokens = Tokenize(snapshot.Content)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	// Structural pass over the token stream: definitions and imports.
	scanStructure(snapshot)
	pysrc.SetFile(snapshot.Root, snapshot)

	if !pysrc.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
		return nil, errors.New("token stream does not cover the content")
	}

	return snapshot, nil
}
