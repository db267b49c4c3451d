package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/format"
)

// NewFormatCmd pretty-prints or minifies a document.
func NewFormatCmd() *cobra.Command {
	var (
		indent format.Indent
		minify bool
		style  string
	)

	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Pretty-print or minify a JSON document",
		Long: `Pretty-print or minify a JSON document, keeping key order.

The indent defaults to the indent setting of jsonview.yml.

Examples:
  jsonview format data.json --indent 4
  cat data.json | jsonview format --minify
  jsonview format data.json --style tabs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if res := format.Validate(text); !res.Valid {
				return res.Error.Err()
			}

			if !cmd.Flags().Changed("indent") {
				cfg, err := cli.LoadConfig(cmd)
				if err != nil {
					return err
				}
				indent = cfg.Indent
			}

			var out string
			switch {
			case style != "":
				st, err := format.ParseStyle(style)
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --style")
				}
				out = format.Format(text, st)
			case minify:
				out = format.Minify(text)
			default:
				out = format.Beautify(text, indent)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	indent = format.DefaultIndent
	cmd.Flags().Var(&indent, "indent", "Indentation: 2, 4, or tab")
	cmd.Flags().BoolVarP(&minify, "minify", "m", false, "Remove all insignificant whitespace")
	cmd.Flags().StringVar(&style, "style", "", "Preset: 2-spaces, 4-spaces, tabs, or minify")
	cmd.MarkFlagsMutuallyExclusive("indent", "minify", "style")

	return cmd
}

// NewEscapeCmd turns arbitrary text into a JSON string literal.
func NewEscapeCmd() *cobra.Command {
	var keepNewline bool

	cmd := &cobra.Command{
		Use:   "escape [file]",
		Short: "Encode text as a JSON string literal",
		Long: `Encode text as a JSON string literal.

A single trailing newline, as added by echo or an editor, is dropped unless
--keep-newline is set.

Examples:
  echo 'say "hi"' | jsonview escape
  jsonview escape template.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if !keepNewline {
				text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.Escape(text))
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepNewline, "keep-newline", false, "Keep a trailing newline in the input")
	return cmd
}

// NewUnescapeCmd decodes a JSON string literal.
func NewUnescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape [file]",
		Short: "Decode a JSON string literal",
		Long: `Decode a JSON string literal. The input must be one quoted string;
surrounding whitespace is ignored.

Examples:
  echo '"line one\nline two"' | jsonview unescape`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out, err := format.Unescape(strings.TrimSpace(text))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
