// Package asm implements a two pass assembler for a fixed format 32 bit
// instruction set with 16 registers and 8192 words of program memory.
package asm

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/miniasm/internal/symbols"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// MemorySize is the number of 32 bit words of the program memory.
const MemorySize = 8192

// Program is the result of a successful assembly.
type Program struct {
	Words   []Word       // machine words in address order
	Origins []int        // source line number of every word
	Symbols symbols.View // all labels of the program
}

// Assembler translates assembly source lines into machine words.
type Assembler struct {
	logger *log.Logger
}

// New returns a new assembler.
func New(logger *log.Logger) *Assembler {
	return &Assembler{
		logger: logger,
	}
}

// assembly contains the state of a single assembler run.
type assembly struct {
	table      *symbols.Table
	records    []Record
	referenced set.Set[string]
	address    int // location counter
}

// Assemble runs both assembler passes over the given source lines. The first
// pass collects all labels and instruction records, the second pass encodes the
// records after all labels are known. The first error aborts the assembly.
func (a *Assembler) Assemble(ctx context.Context, lines []string) (*Program, error) {
	source := Normalize(lines)
	run := &assembly{
		table:      symbols.New(),
		referenced: set.New[string](),
	}

	if err := run.firstPass(ctx, source); err != nil {
		return nil, err
	}
	view := run.table.Freeze()
	a.logger.Debug("First pass finished",
		log.Int("lines", len(source)),
		log.Int("words", len(run.records)),
		log.Int("labels", view.Len()))

	program, err := run.secondPass(ctx, view)
	if err != nil {
		return nil, err
	}

	for _, sym := range view.Sorted() {
		if !run.referenced.Contains(sym.Name) {
			a.logger.Debug("Unused label",
				log.String("label", sym.Name),
				log.Int("address", sym.Address))
		}
	}
	return program, nil
}

func (run *assembly) firstPass(ctx context.Context, source []SourceLine) error {
	for _, line := range source {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("first pass: %w", err)
		}

		parsed, err := ParseLine(line)
		if err != nil {
			return lineError(run.address, line.Line, err)
		}

		switch parsed.Command {
		case fillDirective:
			err = run.fill(parsed)
		case spaceDirective:
			err = run.space(parsed)
		default:
			err = run.instruction(parsed)
		}
		if err != nil {
			return lineError(run.address, line.Line, err)
		}
	}
	return nil
}

func (run *assembly) secondPass(ctx context.Context, view symbols.View) (*Program, error) {
	program := &Program{
		Words:   make([]Word, 0, len(run.records)),
		Origins: make([]int, 0, len(run.records)),
		Symbols: view,
	}

	for _, rec := range run.records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("second pass: %w", err)
		}

		word, err := rec.Encode(view)
		if err != nil {
			return nil, err
		}
		if name, ok := rec.LabelReference(); ok {
			run.referenced.Add(name)
		}

		program.Words = append(program.Words, word)
		program.Origins = append(program.Origins, rec.Line)
	}
	return program, nil
}

// fill handles the .fill directive that emits a single word containing a number
// or the address of a label that is defined before the directive.
func (run *assembly) fill(line ParsedLine) error {
	value, err := run.directiveValue(line)
	if err != nil {
		return err
	}
	if value < -(1<<31) || value > 1<<32-1 {
		return fmt.Errorf("%w: %d does not fit into a 32 bit word", ErrImmediateOverflow, value)
	}
	if run.address >= MemorySize {
		return fmt.Errorf("%w: address %d exceeds %d words", ErrMemoryOverflow, run.address, MemorySize)
	}
	if err := run.addLabel(line.Label); err != nil {
		return err
	}

	run.emit(Record{
		Opcode: Opcode{Mnemonic: fillDirective, Format: FormatData},
		Line:   line.Line,
		Value:  Word(uint32(value)),
	})
	return nil
}

// space handles the .space directive that reserves a number of zero initialized words.
func (run *assembly) space(line ParsedLine) error {
	volume, err := run.directiveValue(line)
	if err != nil {
		return err
	}
	if volume <= 0 {
		return fmt.Errorf("%w: volume %d is not positive", ErrInvalidSpace, volume)
	}
	if int64(run.address)+volume > MemorySize {
		return fmt.Errorf("%w: %d words at address %d exceed %d words",
			ErrMemoryOverflow, volume, run.address, MemorySize)
	}
	if err := run.addLabel(line.Label); err != nil {
		return err
	}

	for i := int64(0); i < volume; i++ {
		run.emit(Record{
			Opcode: Opcode{Mnemonic: spaceDirective, Format: FormatData},
			Line:   line.Line,
		})
	}
	return nil
}

// instruction registers the label of an instruction line and stores the classified
// instruction for encoding in the second pass.
func (run *assembly) instruction(line ParsedLine) error {
	if run.address >= MemorySize {
		return fmt.Errorf("%w: address %d exceeds %d words", ErrMemoryOverflow, run.address, MemorySize)
	}
	if err := run.addLabel(line.Label); err != nil {
		return err
	}

	op, err := Classify(line.Command)
	if err != nil {
		return err
	}
	run.emit(Record{
		Opcode:   op,
		Operands: line.Operands,
		Line:     line.Line,
	})
	return nil
}

// directiveValue resolves the operand of a directive. Directives can only
// reference labels that are defined before them.
func (run *assembly) directiveValue(line ParsedLine) (int64, error) {
	operand := strings.TrimSpace(line.Operands)
	if operand == "" {
		return 0, fmt.Errorf("%w: missing operand for %s", ErrInvalidOperand, line.Command)
	}

	value, label, err := resolveValue(operand, run.table)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", line.Command, err)
	}
	if label != "" {
		run.referenced.Add(label)
	}
	return value, nil
}

func (run *assembly) addLabel(label string) error {
	if label == "" {
		return nil
	}
	return run.table.Add(label, run.address)
}

// emit appends a record at the current address and advances the location counter.
func (run *assembly) emit(rec Record) {
	rec.Address = run.address
	run.records = append(run.records, rec)
	run.address++
}
