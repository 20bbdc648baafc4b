// attstats cleans the E-Saúde medical attendance export and writes the
// descriptive report, chart artifacts and typed exports.
package main

import (
	"os"

	"github.com/gyeh/attstats/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
