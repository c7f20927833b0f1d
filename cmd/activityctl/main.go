// Command activityctl administers activity records without going through the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/erikadonato/to-do-list/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
