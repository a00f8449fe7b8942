// Command precipctl summarizes a precipitation CSV from the command line.
package main

import (
	"os"

	"github.com/couchcryptid/precip-summary-service/internal/adapter/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
