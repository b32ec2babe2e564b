// Auranote operator CLI: inspect and maintain diary data directly against
// the database the server uses.
//
// Usage:
//
//	auranote dashboard --user <uuid> [--at 2024-05-10T12:00:00Z] [--json]
//	auranote wellbeing --user <uuid> [--json]
//	auranote purge --user <uuid> [--yes]
//	auranote migrate
package main

import (
	"fmt"
	"os"

	"github.com/ahmetcoskunkizilkaya/auranote/cmd/auranote/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
