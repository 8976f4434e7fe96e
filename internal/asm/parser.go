package asm

import (
	"fmt"
	"regexp"
	"strings"
)

// linePattern matches an optional label, a command or directive and the operand text.
// The label can be terminated by a colon.
var linePattern = regexp.MustCompile(`^(?:([A-Za-z]\w*)(?:(:)\s*|\s+))?(\.?[A-Za-z]\w*)(?:\s+(.*))?$`)

// ParsedLine is a source line split into its parts.
type ParsedLine struct {
	SourceLine

	Label    string // optional
	Command  string // instruction mnemonic or directive
	Operands string // raw operand text, can be empty
}

// ParseLine splits a normalized source line into label, command and operand text.
func ParseLine(line SourceLine) (ParsedLine, error) {
	parsed := ParsedLine{SourceLine: line}
	if line.Text == haltMnemonic {
		parsed.Command = haltMnemonic
		return parsed, nil
	}

	match := linePattern.FindStringSubmatch(line.Text)
	if match == nil {
		return ParsedLine{}, fmt.Errorf("%w: '%s'", ErrMalformedLine, line.Text)
	}
	label, colon, command, operands := match[1], match[2], match[3], match[4]

	// two tokens without a colon are a command with a single operand like "j loop",
	// except for a labeled halt like "done halt" or a directive without operand
	if label != "" && colon == "" && operands == "" &&
		command != haltMnemonic && !strings.HasPrefix(command, ".") {
		label, command, operands = "", label, command
	}

	parsed.Label = label
	parsed.Command = command
	parsed.Operands = operands
	return parsed, nil
}
