package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/miniasm/internal/asm"
	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile(t *testing.T) {
	t.Run("writes machine code", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "prog.as", "x: .fill 5\nlw 1,2,x\n")
		output := filepath.Join(dir, "prog.mc")

		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: output},
			Flags:      options.Flags{Format: options.FormatBinary, AssembleTest: true},
		}
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
		assert.NoError(t, err)

		content, err := os.ReadFile(output)
		assert.NoError(t, err)
		assert.Equal(t, "00000000000000000000000000000101\n00001001001000010000000000000000\n", string(content))
	})

	t.Run("writes error into output file", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "bad.as", "add 1,2,3\n.space 0\n")
		output := filepath.Join(dir, "bad.mc")

		opts := options.Program{
			Parameters: options.Parameters{Input: input, Output: output},
			Flags:      options.Flags{Quiet: true},
		}
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
		assert.True(t, errors.Is(err, asm.ErrInvalidSpace))

		content, err := os.ReadFile(output)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "# "))
		assert.Contains(t, string(content), "on address 1 (line 2)")
	})
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.as", "halt")
	writeFile(t, dir, "b.as", "halt")
	writeFile(t, dir, "c.txt", "halt")

	t.Run("batch pattern", func(t *testing.T) {
		opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(dir, "*.as")}}

		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("single input", func(t *testing.T) {
		opts := &options.Program{Parameters: options.Parameters{Input: "prog.as"}}

		files, err := GetFilesToProcess(opts)
		assert.NoError(t, err)
		assert.Equal(t, []string{"prog.as"}, files)
	})
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "prog.mc", GenerateOutputFilename("prog.as"))
	assert.Equal(t, "dir/prog.mc", GenerateOutputFilename("dir/prog.s"))
	assert.Equal(t, "prog.mc", GenerateOutputFilename("prog"))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	return path
}
