// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/miniasm/internal/pipeline"
	"github.com/retroenv/miniasm/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// outputExtension is the file extension of generated machine code files.
const outputExtension = ".mc"

// ProcessFile handles the complete file processing workflow. If assembling fails
// and the output is a file, the error message is written into the output file.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	output, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	closeOutput := func() {
		if closer, ok := output.(io.Closer); ok && output != os.Stdout {
			_ = closer.Close()
		}
	}

	pipe := pipeline.New(logger)
	program, err := pipe.Execute(ctx, opts, output)
	closeOutput()
	if err != nil {
		if opts.Output != "" && !errors.Is(err, context.Canceled) {
			if werr := writeErrorFile(opts.Output, err); werr != nil {
				logger.Error("Writing error to output file failed", log.Err(werr))
			}
		}
		return err
	}

	if !opts.Quiet {
		logger.Info("Assembled successfully",
			log.Int("words", len(program.Words)),
			log.Int("labels", program.Symbols.Len()))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + outputExtension
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// writeErrorFile replaces the content of the output file by the error message.
func writeErrorFile(path string, assembleErr error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return writer.WriteError(file, assembleErr)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("miniasm", log.String("version", buildinfo.Version(version, commit, date)))
}
