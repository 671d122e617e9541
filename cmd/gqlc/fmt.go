package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/iso-gql/gqlfront/lexer"
	"github.com/iso-gql/gqlfront/token"
)

// fmtCommand re-renders a GQL source file's token stream with normalized
// whitespace: one space between tokens except where a punctuator calls
// for none. This is deliberately narrower than a full AST-aware
// pretty-printer — diagnostic rendering and formatting are a host
// concern (§1), and the lexer's token stream is the smallest surface
// this module owns that a formatter can be grounded on.
func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Normalize whitespace in a GQL source file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write result to file instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "check if the file is already formatted (exit 1 if not)",
			},
		},
		Action: runFmt,
	}
}

func runFmt(_ context.Context, cmd *cli.Command) error {
	source, path, err := readSource(cmd.Args().First())
	if err != nil {
		return err
	}

	formatted := formatSource(source)

	if cmd.Bool("check") {
		if formatted != source {
			fmt.Fprintf(os.Stderr, "%s is not formatted\n", path)
			return cli.Exit("", 1)
		}

		return nil
	}

	if cmd.Bool("write") && path != "<stdin>" {
		return os.WriteFile(path, []byte(formatted), 0o600)
	}

	_, err = io.WriteString(os.Stdout, formatted)

	return err
}

// formatSource re-lexes source and rejoins its tokens with a single
// canonical whitespace policy, dropping the original inter-token
// whitespace entirely. Lexer-reported diagnostics (e.g. an unterminated
// string) are ignored here: fmt renders whatever tokens the lexer could
// recover, the same "never crash on bad input" stance the lexer itself
// takes.
func formatSource(source string) string {
	result := lexer.Tokenize(source)

	var b strings.Builder

	prevKind := token.Kind(0)
	havePrev := false
	indent := 0

	for _, tok := range result.Tokens {
		if tok.IsEOF() {
			break
		}

		if tok.Kind == token.RParen || tok.Kind == token.RBracket || tok.Kind == token.RBrace {
			indent--
		}

		if havePrev && needsSpace(prevKind, tok.Kind) {
			b.WriteByte(' ')
		}

		b.WriteString(tok.Text)

		if tok.Kind == token.LParen || tok.Kind == token.LBracket || tok.Kind == token.LBrace {
			indent++
		}

		prevKind = tok.Kind
		havePrev = true

		if tok.Kind == token.Semi {
			b.WriteByte('\n')
			havePrev = false
		}
	}

	_ = indent // reserved for a future multi-line layout pass; flat output for now

	if b.Len() > 0 {
		b.WriteByte('\n')
	}

	return b.String()
}

// needsSpace decides whether a space belongs between two adjacent token
// kinds. Defaults to true (the common case); a short list of exceptions
// covers the punctuators that hug their neighbor.
func needsSpace(prev, cur token.Kind) bool {
	switch cur {
	case token.Comma, token.Semi, token.Dot, token.RParen, token.RBracket, token.RBrace, token.ColonColon, token.DotDot:
		return false
	}

	switch prev {
	case token.LParen, token.LBracket, token.LBrace, token.Dot, token.ColonColon, token.DotDot, token.Dollar, token.Bang:
		return false
	}

	return true
}
