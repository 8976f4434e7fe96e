package asm

import (
	"errors"
	"fmt"

	"github.com/retroenv/miniasm/internal/symbols"
)

var (
	ErrMalformedLine      = errors.New("malformed line")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrRegisterRange      = errors.New("register out of range")
	ErrImmediateOverflow  = errors.New("immediate value out of range")
	ErrUndefinedLabel     = errors.New("undefined label")
	ErrMemoryOverflow     = errors.New("memory overflow")
	ErrInvalidSpace       = errors.New("invalid space reservation")
	ErrRedundantOperand   = errors.New("redundant operand")
	ErrInvalidOperand     = errors.New("invalid operand")

	ErrDuplicateLabel = symbols.ErrDuplicateLabel
	ErrLabelTooLong   = symbols.ErrLabelTooLong
)

// LineError is an error that occurred while processing the source line
// at the given program address.
type LineError struct {
	Address int // program memory address of the line
	Line    int // 1-based line number in the source file, 0 if unknown
	Err     error
}

func (e *LineError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s on address %d (line %d)", e.Err, e.Address, e.Line)
	}
	return fmt.Sprintf("%s on address %d", e.Err, e.Address)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(address, line int, err error) error {
	return &LineError{Address: address, Line: line, Err: err}
}
