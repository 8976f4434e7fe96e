// Package verification verifies that the generated output file contains the assembled program.
package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/miniasm/internal/asm"
	"github.com/retroenv/miniasm/internal/loader"
	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/miniasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

const maxReportedMismatches = 10

// VerifyOutput reads the output file back and checks that every line decodes
// to the corresponding word of the assembled program.
func VerifyOutput(ctx context.Context, logger *log.Logger, options options.Program, program *asm.Program) error {
	if options.Output == "" {
		return errors.New("can not verify console output")
	}

	lines, err := loader.New().Load(options.Output)
	if err != nil {
		return fmt.Errorf("reading output file for comparison: %w", err)
	}

	words := make([]asm.Word, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("verifying output: %w", err)
		}

		word, err := writer.Decode(options.Format, line)
		if err != nil {
			return fmt.Errorf("decoding line %d: %w", i+1, err)
		}
		words = append(words, word)
	}

	return checkWordsEqual(logger, program.Words, words)
}

func checkWordsEqual(logger *log.Logger, expected, got []asm.Word) error {
	if len(expected) != len(got) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(expected), len(got))
	}

	var diffs uint64
	for i := range expected {
		if expected[i] == got[i] {
			continue
		}

		diffs++
		if diffs <= maxReportedMismatches {
			logger.Error("Word mismatch",
				log.Int("address", i),
				log.Hex("expected", uint32(expected[i])),
				log.Hex("got", uint32(got[i])))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d word mismatches", diffs)
}
