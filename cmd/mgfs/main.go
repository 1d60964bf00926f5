// Command mgfs ranks and selects the columns of a CSV feature matrix with the
// MGFS score.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
