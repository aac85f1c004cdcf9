package exercises

import (
	"bytes"
	"fmt"
	"os"

	"github.com/KaramelBytes/irislab/internal/utils"
)

// Default file names for UppercaseFile.
const (
	DefaultUppercaseInput  = "input.txt"
	DefaultUppercaseOutput = "output.txt"
)

// UppercaseFile reads in, upper-cases its content and writes it to out.
func UppercaseFile(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := utils.SafeWriteFile(out, bytes.ToUpper(data)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
