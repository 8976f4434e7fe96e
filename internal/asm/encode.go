package asm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/retroenv/miniasm/internal/symbols"
)

var (
	decimalPattern  = regexp.MustCompile(`^-?[0-9]+$`)
	registerPattern = regexp.MustCompile(`^[0-9]+$`)
	labelPattern    = regexp.MustCompile(`^[A-Za-z]\w*$`)
)

// labelLookup is implemented by the symbol table while it is built and by its frozen view.
type labelLookup interface {
	Get(name string) (int, bool)
}

// Record is an instruction or directive word of the program that is created in
// the first pass and encoded in the second pass.
type Record struct {
	Opcode   Opcode
	Operands string // raw operand text
	Address  int
	Line     int
	Value    Word // resolved word of FormatData records
}

// Format returns the format family of the record.
func (r Record) Format() Format {
	return r.Opcode.Format
}

// Encode encodes the record to a machine word. Symbolic operands are resolved
// using the given labels. Encoding does not modify the record, encoding the same
// record again returns the same result.
func (r Record) Encode(labels symbols.View) (Word, error) {
	var (
		word uint32
		err  error
	)

	switch r.Opcode.Format {
	case FormatR:
		word, err = r.encodeR()
	case FormatI1:
		word, err = r.encodeI1(labels)
	case FormatI2:
		word, err = r.encodeI2(labels)
	case FormatI3:
		word, err = r.encodeI3()
	case FormatJ:
		word, err = r.encodeJ(labels)
	case FormatH:
		word, err = r.encodeH()
	case FormatData:
		return r.Value, nil
	default:
		err = fmt.Errorf("unsupported instruction format %s", r.Opcode.Format)
	}

	if err != nil {
		return 0, lineError(r.Address, r.Line, err)
	}
	return Word(word), nil
}

// LabelReference returns the label that is used as operand by the instruction.
func (r Record) LabelReference() (string, bool) {
	var operand string
	switch r.Opcode.Format {
	case FormatI1, FormatI2:
		parts := strings.Split(r.Operands, ",")
		operand = strings.TrimSpace(parts[len(parts)-1])
	case FormatJ:
		operand = strings.TrimSpace(r.Operands)
	default:
		return "", false
	}

	if !labelPattern.MatchString(operand) {
		return "", false
	}
	return operand, true
}

// encodeR encodes "d,s,t": opcode | source | target | destination.
func (r Record) encodeR() (uint32, error) {
	ops, err := splitOperands(r.Operands, 3)
	if err != nil {
		return 0, err
	}
	regs, err := parseRegisters(ops...)
	if err != nil {
		return 0, err
	}
	destination, source, target := regs[0], regs[1], regs[2]

	if err := checkDestination(destination, false); err != nil {
		return 0, err
	}

	word := r.Opcode.Code << opcodeShift
	word |= source << sourceShift
	word |= target << targetShift
	word |= destination << destinationShift
	return word, nil
}

// encodeI1 encodes "d,s,v": opcode | source | destination | immediate.
// Labels used as branch target are encoded relative to the next instruction.
func (r Record) encodeI1(labels labelLookup) (uint32, error) {
	ops, err := splitOperands(r.Operands, 3)
	if err != nil {
		return 0, err
	}
	regs, err := parseRegisters(ops[0], ops[1])
	if err != nil {
		return 0, err
	}
	destination, source := regs[0], regs[1]

	branch := r.Opcode.Mnemonic == beqMnemonic
	if err := checkDestination(destination, branch); err != nil {
		return 0, err
	}

	value, label, err := resolveValue(ops[2], labels)
	if err != nil {
		return 0, err
	}
	if label != "" && branch {
		value = value - int64(r.Address) - 1
	}
	immediate, err := EncodeField(value, immediateWidth)
	if err != nil {
		return 0, err
	}

	word := r.Opcode.Code << opcodeShift
	word |= source << sourceShift
	word |= destination << targetShift
	word |= immediate
	return word, nil
}

// encodeI2 encodes "d,v": opcode | destination | immediate.
func (r Record) encodeI2(labels labelLookup) (uint32, error) {
	ops, err := splitOperands(r.Operands, 2)
	if err != nil {
		return 0, err
	}
	regs, err := parseRegisters(ops[0])
	if err != nil {
		return 0, err
	}
	destination := regs[0]
	if err := checkDestination(destination, false); err != nil {
		return 0, err
	}

	value, _, err := resolveValue(ops[1], labels)
	if err != nil {
		return 0, err
	}
	immediate, err := EncodeField(value, immediateWidth)
	if err != nil {
		return 0, err
	}

	word := r.Opcode.Code << opcodeShift
	word |= destination << targetShift
	word |= immediate
	return word, nil
}

// encodeI3 encodes "d,s": opcode | source | destination.
func (r Record) encodeI3() (uint32, error) {
	ops, err := splitOperands(r.Operands, 2)
	if err != nil {
		return 0, err
	}
	regs, err := parseRegisters(ops...)
	if err != nil {
		return 0, err
	}
	destination, source := regs[0], regs[1]
	if err := checkDestination(destination, false); err != nil {
		return 0, err
	}

	word := r.Opcode.Code << opcodeShift
	word |= source << sourceShift
	word |= destination << targetShift
	return word, nil
}

// encodeJ encodes an absolute jump target: opcode | target address.
func (r Record) encodeJ(labels labelLookup) (uint32, error) {
	ops, err := splitOperands(r.Operands, 1)
	if err != nil {
		return 0, err
	}

	value, _, err := resolveValue(ops[0], labels)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: jump target %d can not be negative", ErrImmediateOverflow, value)
	}
	target, err := EncodeField(value, immediateWidth)
	if err != nil {
		return 0, err
	}

	word := r.Opcode.Code << opcodeShift
	word |= target
	return word, nil
}

func (r Record) encodeH() (uint32, error) {
	if r.Operands != "" {
		return 0, fmt.Errorf("%w: '%s' after %s", ErrRedundantOperand, r.Operands, r.Opcode.Mnemonic)
	}
	return r.Opcode.Code << opcodeShift, nil
}

// splitOperands splits the comma separated operand text and checks the operand count.
func splitOperands(text string, count int) ([]string, error) {
	parts := strings.Split(text, ",")
	if len(parts) != count {
		return nil, fmt.Errorf("%w: expected %d operands but found '%s'", ErrInvalidOperand, count, text)
	}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty operand in '%s'", ErrInvalidOperand, text)
		}
		parts[i] = part
	}
	return parts, nil
}

func parseRegisters(operands ...string) ([]uint32, error) {
	regs := make([]uint32, len(operands))
	for i, operand := range operands {
		if !registerPattern.MatchString(operand) {
			return nil, fmt.Errorf("%w: register '%s' is not a number", ErrInvalidOperand, operand)
		}
		value, err := strconv.ParseUint(operand, 10, 32)
		if err != nil || value > maxRegister {
			return nil, fmt.Errorf("%w: register %s must be less than %d", ErrRegisterRange, operand, maxRegister+1)
		}
		regs[i] = uint32(value)
	}
	return regs, nil
}

func checkDestination(destination uint32, allowZero bool) error {
	if destination == 0 && !allowZero {
		return fmt.Errorf("%w: destination register can not be zero", ErrRegisterRange)
	}
	return nil
}

// resolveValue returns the value of a decimal number or the address of a label.
// If the operand is a label its name is returned as well.
func resolveValue(operand string, labels labelLookup) (int64, string, error) {
	switch {
	case decimalPattern.MatchString(operand):
		value, err := strconv.ParseInt(operand, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, "", fmt.Errorf("%w: %s", ErrImmediateOverflow, operand)
			}
			return 0, "", fmt.Errorf("%w: %s", ErrInvalidOperand, operand)
		}
		return value, "", nil

	case labelPattern.MatchString(operand):
		address, ok := labels.Get(operand)
		if !ok {
			return 0, "", fmt.Errorf("%w: '%s'", ErrUndefinedLabel, operand)
		}
		return int64(address), operand, nil

	default:
		return 0, "", fmt.Errorf("%w: '%s' is neither a number nor a label", ErrInvalidOperand, operand)
	}
}
