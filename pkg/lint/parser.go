package lint

import (
	"context"

	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// Parser turns raw Python source into a FileSnapshot. The interface
// lives here, in the consuming package per the gobible, with the
// concrete scanner in parser/pyscan.
//
// Implementations must be deterministic for a given path and content
// pair, must not perform I/O or mutate the content slice, and are
// expected to be safe for concurrent use.
type Parser interface {
	// Parse scans source bytes into a snapshot. The path is carried
	// through for diagnostics only. On failure Parse returns a nil
	// snapshot and an error, never a partial result.
	//
	// A returned snapshot echoes the path and content it was given,
	// holds tokens that pass pysrc.ValidateTokens, and has a non-nil
	// module root whose nodes all point back at the snapshot.
	Parse(ctx context.Context, path string, content []byte) (*pysrc.FileSnapshot, error)
}
