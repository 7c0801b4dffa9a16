// Command cjtrainer drills character input codes with spaced repetition.
package main

import (
	"os"

	"github.com/roach88/cjtrainer/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
