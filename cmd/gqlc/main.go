// Command gqlc is the CLI front end for the GQL lexer/parser/validator
// pipeline: parse, parse --validate, and fmt. Grounded on cmd/scaf/main.go's
// urfave/cli/v3 composition (one *cli.Command per subcommand, wired into
// a root app).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "gqlc",
		Version: version,
		Usage:   "GQL lexer/parser/validator CLI",
		Commands: []*cli.Command{
			parseCommand(),
			fmtCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
