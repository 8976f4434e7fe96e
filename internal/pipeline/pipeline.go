// Package pipeline orchestrates the assembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/miniasm/internal/asm"
	"github.com/retroenv/miniasm/internal/loader"
	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/miniasm/internal/verification"
	"github.com/retroenv/miniasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete assembly workflow.
type Pipeline struct {
	logger    *log.Logger
	loader    *loader.Loader
	assembler *asm.Assembler
}

// New creates a new assembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:    logger,
		loader:    loader.New(),
		assembler: asm.New(logger),
	}
}

// Execute runs the complete assembly pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, output io.Writer) (*asm.Program, error) {
	lines, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	return p.ExecuteLines(ctx, lines, opts, output)
}

// ExecuteLines runs the assembly pipeline with source lines that are already in memory.
// The written output is verified if requested by the options.
func (p *Pipeline) ExecuteLines(ctx context.Context, lines []string, opts options.Program,
	output io.Writer) (*asm.Program, error) {

	p.printInfo(opts, lines)

	program, err := p.assembler.Assemble(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("assembling: %w", err)
	}

	w := writer.New(program, output, writer.Options{Format: opts.Format})
	if err := w.Write(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	if opts.AssembleTest {
		if syncer, ok := output.(interface{ Sync() error }); ok {
			if err := syncer.Sync(); err != nil {
				return nil, fmt.Errorf("syncing output: %w", err)
			}
		}
		if err := verification.VerifyOutput(ctx, p.logger, opts, program); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return program, nil
}

// printInfo prints information about the source being processed.
func (p *Pipeline) printInfo(opts options.Program, lines []string) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Assembling",
		log.String("file", opts.Input),
		log.Int("lines", len(lines)),
		log.String("format", opts.Format),
	)
}
