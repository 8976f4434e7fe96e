package asm

import "fmt"

// Format is the field layout family of an instruction.
type Format uint8

// Instruction formats. FormatData is used for words that are produced by directives
// and are already resolved when they are created.
const (
	FormatR Format = iota
	FormatI1
	FormatI2
	FormatI3
	FormatJ
	FormatH
	FormatData
)

var formatNames = [...]string{
	FormatR:    "R",
	FormatI1:   "I1",
	FormatI2:   "I2",
	FormatI3:   "I3",
	FormatJ:    "J",
	FormatH:    "H",
	FormatData: "data",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

const (
	haltMnemonic = "halt"
	beqMnemonic  = "beq"

	fillDirective  = ".fill"
	spaceDirective = ".space"
)

// Opcode describes an instruction of the instruction set.
type Opcode struct {
	Mnemonic string
	Code     uint32 // 4 bit opcode value
	Format   Format
}

// opcodes contains all supported instructions, the instruction set is fixed.
var opcodes = map[string]Opcode{
	"add":  {Mnemonic: "add", Code: 0b0000, Format: FormatR},
	"sub":  {Mnemonic: "sub", Code: 0b0001, Format: FormatR},
	"slt":  {Mnemonic: "slt", Code: 0b0010, Format: FormatR},
	"or":   {Mnemonic: "or", Code: 0b0011, Format: FormatR},
	"and":  {Mnemonic: "and", Code: 0b0100, Format: FormatR},
	"addi": {Mnemonic: "addi", Code: 0b0101, Format: FormatI1},
	"slti": {Mnemonic: "slti", Code: 0b0110, Format: FormatI1},
	"ori":  {Mnemonic: "ori", Code: 0b0111, Format: FormatI1},
	"lui":  {Mnemonic: "lui", Code: 0b1000, Format: FormatI2},
	"lw":   {Mnemonic: "lw", Code: 0b1001, Format: FormatI1},
	"sw":   {Mnemonic: "sw", Code: 0b1010, Format: FormatI1},
	"beq":  {Mnemonic: "beq", Code: 0b1011, Format: FormatI1},
	"jalr": {Mnemonic: "jalr", Code: 0b1100, Format: FormatI3},
	"j":    {Mnemonic: "j", Code: 0b1101, Format: FormatJ},
	"halt": {Mnemonic: "halt", Code: 0b1110, Format: FormatH},
}

// Classify returns the opcode information for the given mnemonic.
func Classify(mnemonic string) (Opcode, error) {
	op, ok := opcodes[mnemonic]
	if !ok {
		return Opcode{}, fmt.Errorf("%w: '%s'", ErrUnknownInstruction, mnemonic)
	}
	return op, nil
}
