// Command stylec compiles style objects into atomic class names.
package main

import (
	"os"

	"github.com/roach88/stylec/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
