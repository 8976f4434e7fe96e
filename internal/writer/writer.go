// Package writer implements the output of assembled programs.
package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/miniasm/internal/asm"
	"github.com/retroenv/miniasm/internal/options"
)

const commentPrefix = "# "

// Writer writes an assembled program in the configured format.
type Writer struct {
	program *asm.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	Format string // options.FormatBinary or options.FormatHex
}

// New creates a new writer.
func New(program *asm.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		program: program,
		options: options,
		writer:  writer,
	}
}

// Write writes all words of the program, one word per line.
func (w Writer) Write() error {
	switch w.options.Format {
	case options.FormatBinary, "":
		return w.writeBinary()
	case options.FormatHex:
		return w.writeHex()
	default:
		return fmt.Errorf("unsupported output format '%s'", w.options.Format)
	}
}

func (w Writer) writeBinary() error {
	for _, word := range w.program.Words {
		if _, err := fmt.Fprintln(w.writer, word.String()); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// writeHex writes a listing that contains the hex value of every word followed by
// a comment with the address, the source line and the labels at the address.
func (w Writer) writeHex() error {
	for address, word := range w.program.Words {
		comment := fmt.Sprintf("%04d line %d", address, w.program.Origins[address])
		if names := w.program.Symbols.AtAddress(address); len(names) > 0 {
			comment += " " + strings.Join(names, ", ")
		}
		if _, err := fmt.Fprintf(w.writer, "0x%08x %s%s\n", uint32(word), commentPrefix, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// WriteError writes the error of a failed assembly as comment line.
func WriteError(writer io.Writer, err error) error {
	if _, werr := fmt.Fprintf(writer, "%s%s\n", commentPrefix, err); werr != nil {
		return fmt.Errorf("writing error: %w", werr)
	}
	return nil
}

// Decode parses a line that was written in the given format and returns the word.
func Decode(format, line string) (asm.Word, error) {
	line = strings.TrimSpace(line)

	var (
		value uint64
		err   error
	)
	switch format {
	case options.FormatBinary, "":
		if len(line) != 32 {
			return 0, fmt.Errorf("binary word '%s' does not have 32 digits", line)
		}
		value, err = strconv.ParseUint(line, 2, 32)

	case options.FormatHex:
		field, _, _ := strings.Cut(line, " ")
		hex, ok := strings.CutPrefix(field, "0x")
		if !ok {
			return 0, fmt.Errorf("hex word '%s' is missing the 0x prefix", field)
		}
		value, err = strconv.ParseUint(hex, 16, 32)

	default:
		return 0, fmt.Errorf("unsupported output format '%s'", format)
	}

	if err != nil {
		return 0, fmt.Errorf("parsing word '%s': %w", line, err)
	}
	return asm.Word(value), nil
}
