// Command chunkwise splits a JSON file of document elements into chunks.
package main

import (
	"fmt"
	"os"

	"github.com/tsawler/chunkwise/internal/cli"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cli.SetVersion(version, commit)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
