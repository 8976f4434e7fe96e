package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/miniasm/internal/asm"
	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const testSource = `# count down from 5
        lw 1,0,five
loop    addi 1,1,-1
        beq 1,0,done
        j loop
done    halt
five    .fill 5
`

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
	assert.NotNil(t, p.assembler)
}

//nolint:funlen // test functions can be long
func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	tmpFile := createTempFile(t, testSource)

	t.Run("execute pipeline successfully", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
			Flags:      options.Flags{Format: options.FormatBinary, Quiet: true},
		}

		var buf bytes.Buffer
		program, err := p.Execute(context.Background(), opts, &buf)
		assert.NoError(t, err)
		assert.NotNil(t, program)
		assert.Len(t, program.Words, 6)
		assert.Equal(t, 6*33, buf.Len())
		assert.Equal(t, "00001001000000010000000000000101\n", buf.String()[:33])
	})

	t.Run("execute with verification", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "test.mc")
		file, err := os.Create(output)
		assert.NoError(t, err)
		defer func() { _ = file.Close() }()

		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile, Output: output},
			Flags:      options.Flags{Format: options.FormatHex, AssembleTest: true},
		}

		program, err := p.Execute(context.Background(), opts, file)
		assert.NoError(t, err)
		assert.NotNil(t, program)
	})

	t.Run("execute with invalid format", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
			Flags:      options.Flags{Format: "elf", Quiet: true},
		}

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, &buf)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "unsupported output format")
	})

	t.Run("execute with non-existent file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.as"},
			Flags:      options.Flags{Quiet: true},
		}

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, &buf)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "loading source")
	})
}

func TestExecuteLinesAssemblyError(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := options.Program{Flags: options.Flags{Quiet: true}}

	var buf bytes.Buffer
	_, err := p.ExecuteLines(context.Background(), []string{"add 1,2,3", "bad 1,2"}, opts, &buf)

	assert.True(t, errors.Is(err, asm.ErrUnknownInstruction))
	assert.ErrorContains(t, err, "on address 1 (line 2)")
	assert.Equal(t, 0, buf.Len())
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.as")
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
