// Package options contains the program options.
package options

// Output formats of the assembled program.
const (
	FormatBinary = "bin" // one 32 character binary string per word
	FormatHex    = "hex" // hex listing with addresses, source lines and labels
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input assembly source file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.as)"`
}

// Flags contains behavior options.
type Flags struct {
	Format       string `flag:"f" usage:"output format: bin, hex" default:"bin"`
	AssembleTest bool   `flag:"verify" usage:"verify output by reading it back and comparing it to the assembled words"`
	Debug        bool   `flag:"debug" usage:"enable debug logging"`
	Quiet        bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the assembler.
type Program struct {
	Parameters
	Flags
}
