package cli

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// wantJSON is true when the caller asked for JSON or output is not a terminal.
func wantJSON(forced bool, out io.Writer) bool {
	return forced || !isTerminal(out)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
