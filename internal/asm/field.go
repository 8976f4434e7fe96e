package asm

import "fmt"

// Field positions inside a 32 bit word, counted from the least significant bit.
const (
	opcodeShift      = 24
	sourceShift      = 20
	targetShift      = 16
	destinationShift = 12

	registerWidth  = 4
	immediateWidth = 16

	maxRegister = 1<<registerWidth - 1
)

// EncodeField returns the lowest width bits of value. Negative values are
// stored as two's complement. The magnitude of value has to be less than 2^width.
func EncodeField(value int64, width uint) (uint32, error) {
	if width == 0 || width > 32 {
		panic("field width out of range")
	}
	limit := int64(1) << width
	if value <= -limit || value >= limit {
		return 0, fmt.Errorf("%w: %d does not fit into %d bits", ErrImmediateOverflow, value, width)
	}

	mask := uint64(limit - 1)
	return uint32(uint64(value) & mask), nil
}

// DecodeSigned interprets the lowest width bits of field as two's complement value.
func DecodeSigned(field uint32, width uint) int64 {
	if width == 0 || width > 32 {
		panic("field width out of range")
	}
	shift := 64 - width
	return int64(uint64(field)<<shift) >> shift
}

// Word is an assembled 32 bit machine word.
type Word uint32

// String returns the word as 32 character binary string, most significant bit first.
func (w Word) String() string {
	return fmt.Sprintf("%032b", uint32(w))
}

// Opcode returns the opcode field of the word.
func (w Word) Opcode() uint32 {
	return uint32(w) >> opcodeShift & maxRegister
}

// Source returns the source register field of the word.
func (w Word) Source() uint32 {
	return uint32(w) >> sourceShift & maxRegister
}

// Target returns the target register field of the word.
func (w Word) Target() uint32 {
	return uint32(w) >> targetShift & maxRegister
}

// Destination returns the destination register field of R format words.
func (w Word) Destination() uint32 {
	return uint32(w) >> destinationShift & maxRegister
}

// Immediate returns the 16 bit immediate field of the word.
func (w Word) Immediate() uint32 {
	return uint32(w) & (1<<immediateWidth - 1)
}
