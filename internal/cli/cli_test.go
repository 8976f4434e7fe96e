package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/miniasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options.Program
		wantErr bool
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.as"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.as"},
				Flags:      options.Flags{Format: options.FormatBinary},
			},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "test.as", "-o", "test.mc"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.as", Output: "test.mc"},
				Flags:      options.Flags{Format: options.FormatBinary},
			},
		},
		{
			name: "hex format uppercase",
			args: []string{"prog", "-f", "HEX", "-q", "test.as"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.as"},
				Flags:      options.Flags{Format: options.FormatHex, Quiet: true},
			},
		},
		{
			name: "binary format alias",
			args: []string{"prog", "-f", "binary", "-debug", "test.as"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.as"},
				Flags:      options.Flags{Format: options.FormatBinary, Debug: true},
			},
		},
		{
			name: "verify with output",
			args: []string{"prog", "-verify", "-o", "test.mc", "test.as"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.as", Output: "test.mc"},
				Flags:      options.Flags{Format: options.FormatBinary, AssembleTest: true},
			},
		},
		{
			name:    "verify without output",
			args:    []string{"prog", "-verify", "test.as"},
			wantErr: true,
		},
		{
			name:    "unsupported format",
			args:    []string{"prog", "-f", "elf", "test.as"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsage(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}
	_, err := ParseFlags()

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.as"}))

	err := validateArgs([]string{"test.as", "-q"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.ErrorContains(t, err, "-q")
}
