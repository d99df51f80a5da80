// Command todoctl manages the daily todo list directly against the
// configured storage backend, without a running server.
package main

import (
	"fmt"
	"os"

	"github.com/example/daily-todos/modules/storage"
)

var Version = "dev"

func main() {
	rootCmd := newRootCmd(storage.Open)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
