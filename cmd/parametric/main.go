// Command parametric resolves a JSON or YAML payload against a declaration
// file and prints the clean output.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintln(os.Stderr, "parametric:", err)
		}
		os.Exit(1)
	}
}
