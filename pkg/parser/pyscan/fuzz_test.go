package pyscan

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// FuzzTokenize checks the scanner's totality claim: any byte sequence
// tokenizes without panicking into a stream that tiles the input.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"x = 1",
		"def foo():\n    pass\n",
		"class Shape:\n    pass\n",
		"async def fetch():\n    await x\n",
		"import os\nfrom sys import path\n",
		"# comment\nx = 1  # trailing\n",
		"s = 'single'",
		"s = \"double\"",
		"s = '''triple\nline'''",
		"s = f'{x}'",
		"s = rb'\\d+'",
		"s = 'unterminated",
		"s = \"\"\"never closed\n",
		"x = 1 + \\\n    2\n",
		"items = [\n    1,\n]\n",
		"a\r\nb\r\n",
		"a\rb",
		"\tx = 1\n",
		"n = 0xFF + 1_000.5e3",
		"café = 'unicode'",
		"@decorator\ndef f():\n    return {'k': [1, 2]}\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, src []byte) {
		tokens := Tokenize(src)

		if len(src) > 0 && len(tokens) == 0 {
			t.Fatal("non-empty input produced no tokens")
		}
		if !pysrc.ValidateTokens(tokens, len(src)) {
			t.Errorf("token stream does not tile %d input bytes", len(src))
		}
	})
}

// FuzzParse runs the whole pipeline over arbitrary bytes. With a live
// context the parser has no legitimate error path, so any failure here is
// a scanner bug.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"x = 1",
		"def foo(a, b):\n    return a + b\n",
		"class A:\n    def m(self):\n        pass\n",
		"import zlib\nimport abc\n",
		"s = '''\ndef masked():\n    pass\n'''\n",
		"async def f():\n    pass\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, src []byte) {
		snapshot, err := New().Parse(context.Background(), "fuzz.py", src)
		if err != nil {
			t.Fatalf("Parse failed on arbitrary input: %v", err)
		}

		if !bytes.Equal(snapshot.Content, src) {
			t.Error("snapshot content differs from input")
		}
		if !pysrc.ValidateTokens(snapshot.Tokens, len(src)) {
			t.Error("token stream does not tile the content")
		}

		if snapshot.Root == nil {
			t.Fatal("snapshot has no root node")
		}
		if snapshot.Root.Kind != pysrc.NodeModule {
			t.Errorf("root kind = %v, want NodeModule", snapshot.Root.Kind)
		}

		if bad := pysrc.FindFirst(snapshot.Root, func(n *pysrc.Node) bool {
			return n.File != snapshot
		}); bad != nil {
			t.Errorf("%v node is not linked back to its snapshot", bad.Kind)
		}
	})
}

// FuzzParseDeterministic parses every input twice and compares the
// shapes of the results.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"def f():\n    pass\n",
		"class A:\n    pass\n",
		"import os",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, src []byte) {
		p := New()

		first, err := p.Parse(context.Background(), "test.py", src)
		if err != nil {
			t.Fatalf("first parse: %v", err)
		}
		second, err := p.Parse(context.Background(), "test.py", src)
		if err != nil {
			t.Fatalf("second parse: %v", err)
		}

		if len(first.Tokens) != len(second.Tokens) {
			t.Errorf("token counts differ between runs: %d vs %d",
				len(first.Tokens), len(second.Tokens))
		}
		if n1, n2 := countNodes(first.Root), countNodes(second.Root); n1 != n2 {
			t.Errorf("node counts differ between runs: %d vs %d", n1, n2)
		}
		if len(first.Imports) != len(second.Imports) {
			t.Errorf("import counts differ between runs: %d vs %d",
				len(first.Imports), len(second.Imports))
		}
	})
}
