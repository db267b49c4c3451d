package cmd

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/schema"
)

// validateOutput is the --json result of validate.
type validateOutput struct {
	File       string                  `json:"file"`
	Valid      bool                    `json:"valid"`
	Lines      int                     `json:"lines"`
	Nodes      int                     `json:"nodes,omitempty"`
	Error      *format.ValidationError `json:"error,omitempty"`
	Schema     string                  `json:"schema,omitempty"`
	Violations []schema.Violation      `json:"violations,omitempty"`
}

// NewValidateCmd checks that a document parses and, optionally, that it
// satisfies a JSON Schema.
func NewValidateCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a document is valid JSON",
		Long: `Check that a document is valid JSON and report where it is not.

With --schema the document must also satisfy the given JSON Schema.
Blank input is valid.

Examples:
  jsonview validate data.json
  jsonview validate data.json --schema data.schema.json --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res := format.Validate(text)
			out := validateOutput{File: name, Valid: res.Valid, Lines: format.LineCount(text), Error: res.Error}

			var failure error
			if res.Valid {
				out.Nodes = countNodes(tree.Build(res.Value))
				if schemaPath != "" {
					out.Schema = schemaPath
					failure = checkSchema(schemaPath, res)
					out.Violations = schema.Violations(failure)
					out.Valid = failure == nil
				}
			} else {
				failure = res.Error.Err()
			}

			if cli.GetOptions(cmd).JSONOutput {
				data, err := gojson.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return failure
			}

			if failure != nil {
				return failure
			}
			ulog := logging.NewUnifiedLogger("validate").WithWriter(cmd.ErrOrStderr())
			ulog.Success(fmt.Sprintf("%s is valid JSON", name)).
				Field("file", name).
				Field("lines", out.Lines).
				Field("nodes", out.Nodes).
				Field("schema", schemaPath).
				Log()
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "JSON Schema file the document must satisfy")
	return cmd
}

func checkSchema(path string, res format.Result) error {
	v, err := schema.CompileFile(path)
	if err != nil {
		return err
	}
	return v.ValidateValue(res.Value)
}

func countNodes(root *tree.Node) int {
	n := 0
	tree.Walk(root, func(*tree.Node) bool {
		n++
		return true
	})
	return n
}
