// Command gql-repl is an interactive front end to the validator: type a
// statement, see its diagnostics immediately. Runs as a bubbletea TUI on
// a terminal and falls back to a line-at-a-time loop otherwise, the same
// TTY branch runner/tui.go's NewTUIFormatter takes with go-isatty.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/iso-gql/gqlfront/adapters/memcatalog"
	"github.com/iso-gql/gqlfront/validator"
)

func main() {
	app := &cli.Command{
		Name:  "gql-repl",
		Usage: "Interactive GQL statement validator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metadata",
				Usage: "path to a memcatalog YAML fixture to validate against",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "strict inference policy",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	newValidator, err := validatorFactory(cmd)
	if err != nil {
		return err
	}

	if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		p := tea.NewProgram(newModel(newValidator))
		_, err := p.Run()

		return err
	}

	return runPlain(os.Stdin, os.Stdout, newValidator)
}

func validatorFactory(cmd *cli.Command) (func() *validator.SemanticValidator, error) {
	strict := cmd.Bool("strict")
	metaPath := cmd.String("metadata")

	var provider *memcatalog.Provider

	if metaPath != "" {
		p, err := memcatalog.Load(metaPath)
		if err != nil {
			return nil, fmt.Errorf("loading metadata: %w", err)
		}

		provider = p
	}

	return func() *validator.SemanticValidator {
		v := validator.New()

		if strict {
			v = v.WithInferencePolicy(validator.Strict)
		}

		if provider != nil {
			v = v.WithMetadataProvider(provider).WithConfig(validator.ValidationConfig{MetadataValidation: true})
		}

		return v
	}, nil
}

// runPlain is the non-TTY fallback: read one statement per line from r,
// validate it, and print plain-text diagnostics to w. Used for piped
// input and CI, where a bubbletea alt-screen program makes no sense.
func runPlain(r io.Reader, w io.Writer, newValidator func() *validator.SemanticValidator) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		v := newValidator()

		_, diags, outcome := validator.ParseAndValidate(line, v)

		if len(diags) == 0 {
			fmt.Fprintln(w, "ok")
			continue
		}

		for _, d := range diags {
			fmt.Fprintf(w, "%s: %s\n", d.Severity, d.Message)
		}

		if !outcome.IsSuccess() {
			fmt.Fprintln(w, "rejected")
		}
	}

	return scanner.Err()
}
