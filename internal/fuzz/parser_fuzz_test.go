package fuzztests

import (
	"context"
	"testing"
	"time"

	"hostbridge/internal/parser"
	"hostbridge/internal/source"
	"hostbridge/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang checks that the parser terminates on any input,
// including the error-recovery paths.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// recovery edge cases
	f.Add([]byte("function f( { let x = 1 }"))
	f.Add([]byte("let x: = ;"))
	f.Add([]byte("import { from \"./b\""))
	f.Add([]byte("{ { { { } } } }"))
	f.Add([]byte("class C { m( }"))
	f.Add([]byte("for (let i = 0 i < 10 i++) {}"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			file := source.NewVirtualFile("/fuzz.ts", input)
			done <- testkit.CheckSpanBounds(parser.ParseFile(file, parser.Options{MaxErrors: 128}))
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("span bounds: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
