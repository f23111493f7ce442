// Package pysrc holds the shared representation of a Python source
// file: the raw bytes, the token stream, the line table, the
// definition tree, and the import list. Snapshots are immutable and
// lossless, so rules can reason about exact byte offsets.
//
// There is deliberately no Parser type here. The interface sits with
// its consumer as lint.Parser, and scanners implement that.
package pysrc
