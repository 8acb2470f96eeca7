package contract

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	HeadingColor = color.New(color.FgCyan, color.Bold) // section headings
	TitleColor   = color.New(color.FgWhite, color.Bold)
	OKColor      = color.New(color.FgGreen)
	BadColor     = color.New(color.FgRed, color.Bold)
)

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// FormatFloat renders a float with the given precision. NaN renders as "NaN".
func FormatFloat(v float64, precision int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatCell coerces a section cell into its display string.
func FormatCell(v any, precision int) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return FormatFloat(x, precision)
	case float32:
		return FormatFloat(float64(x), precision)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
