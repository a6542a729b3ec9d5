// Package main provides the find-non-ascii command.
package main

import (
	"os"

	"github.com/leapstack-labs/findnonascii/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
