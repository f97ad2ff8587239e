// ABOUTME: Entry point for atlantic-photo CLI
// ABOUTME: Command-line and terminal UI client for the AtlanticPhoto service

package main

import (
	"fmt"
	"os"

	"github.com/Sikan777/AtlanticPhoto/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
