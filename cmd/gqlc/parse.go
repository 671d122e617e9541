package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	gql "github.com/iso-gql/gqlfront"
	"github.com/iso-gql/gqlfront/adapters/memcatalog"
	"github.com/iso-gql/gqlfront/lexer"
	"github.com/iso-gql/gqlfront/validator"
)

var errNoInput = errors.New("no input: pass a file or pipe source on stdin")

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse (and optionally validate) a GQL source file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "run the semantic validator after parsing",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "strict inference policy: unresolved properties are errors, not Any",
			},
			&cli.StringFlag{
				Name:  "metadata",
				Usage: "path to a memcatalog YAML fixture to validate against",
			},
			&cli.StringFlag{
				Name:  "graph",
				Usage: "graph reference passed to the metadata provider",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "trace validator passes to stderr",
			},
		},
		Action: runParse,
	}
}

func runParse(_ context.Context, cmd *cli.Command) error {
	source, path, err := readSource(cmd.Args().First())
	if err != nil {
		return err
	}

	cfg, _ := LoadConfig(".")

	if !cmd.Bool("validate") {
		res := gql.Parse(source)
		printDiagnostics(os.Stdout, path, source, res.Diagnostics)

		if hasError(res.Diagnostics) {
			return cli.Exit("", 1)
		}

		return nil
	}

	v := validator.New()

	if cmd.Bool("strict") || cfg.InferencePolicy == "strict" {
		v = v.WithInferencePolicy(validator.Strict)
	}

	if cmd.Bool("verbose") {
		logger, _ := zap.NewDevelopment()
		v = v.WithLogger(logger)
	}

	metaPath := cmd.String("metadata")
	if metaPath != "" {
		provider, err := memcatalog.Load(metaPath)
		if err != nil {
			return fmt.Errorf("loading metadata: %w", err)
		}

		v = v.WithMetadataProvider(provider).WithConfig(validator.ValidationConfig{
			MetadataValidation: true,
		})
	}

	_, _, outcome := validator.ParseAndValidate(source, v)
	printDiagnostics(os.Stdout, path, source, outcome.Diagnostics)

	if !outcome.IsSuccess() {
		return cli.Exit("", 1)
	}

	return nil
}

// readSource reads source text from a named file, or from stdin when arg
// is empty. Returns the text and a display name for diagnostics.
func readSource(arg string) (source, name string, err error) {
	if arg == "" {
		info, statErr := os.Stdin.Stat()
		if statErr == nil && (info.Mode()&os.ModeCharDevice) != 0 {
			return "", "", errNoInput
		}

		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", fmt.Errorf("reading stdin: %w", readErr)
		}

		return string(data), "<stdin>", nil
	}

	data, readErr := os.ReadFile(arg) //#nosec G304 -- path comes from user-supplied CLI arg
	if readErr != nil {
		return "", "", readErr
	}

	return string(data), arg, nil
}

func hasError(diags []gql.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == gql.SeverityError {
			return true
		}
	}

	return false
}

// printDiagnostics renders diagnostics one per line in a compiler-style
// "file:line:col: severity: message" format, resolving each byte-offset
// Span against source with lexer.Locate.
func printDiagnostics(w io.Writer, path, source string, diags []gql.Diagnostic) {
	for _, d := range diags {
		pos := lexer.Locate(source, d.Span.Start)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s", path, pos.Line, pos.Column, d.Severity, d.Message)

		if d.Code != "" {
			fmt.Fprintf(w, " [%s]", d.Code)
		}

		fmt.Fprintln(w)

		for _, l := range d.Labels {
			lpos := lexer.Locate(source, l.Span.Start)
			fmt.Fprintf(w, "  %s:%d:%d: note: %s\n", path, lpos.Line, lpos.Column, l.Note)
		}
	}
}
