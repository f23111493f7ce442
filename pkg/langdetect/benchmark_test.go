package langdetect

import "testing"

func BenchmarkDetect(b *testing.B) {
	inputs := []struct {
		name string
		src  string
	}{
		{"python", "import sys\n\ndef main():\n    return len(sys.argv)\n\nif __name__ == '__main__':\n    sys.exit(main())\n"},
		{"shebang", "#!/usr/bin/env python3\nimport sys\nsys.exit(main())\n"},
		{"plain", "notes without any code in them"},
		{"small", "hello"},
		{"empty", ""},
	}
	for _, in := range inputs {
		b.Run(in.name, func(b *testing.B) {
			code := []byte(in.src)
			b.ResetTimer()
			for range b.N {
				Detect(code)
			}
		})
	}
}

func BenchmarkIsPython(b *testing.B) {
	content := []byte("import os\n\nprint(os.getcwd())\n")
	b.ResetTimer()
	for range b.N {
		IsPython("scripts/run", content)
	}
}
