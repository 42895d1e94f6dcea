package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Out is where Logf writes. Tests may redirect it.
var Out io.Writer = os.Stderr

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case fmt.Stringer, bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(Out, msg, args...)
}
