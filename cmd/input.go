package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/profiling"
)

// stdinName labels documents read from standard input.
const stdinName = "stdin"

// readInput returns the contents of the file named by args[0], or of stdin
// when there is no argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (text, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return "", stdinName, errors.New(errors.ErrCodeInvalidInput, "no input: pass a file or pipe a document on stdin")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", stdinName, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read stdin")
		}
		return string(data), stdinName, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", args[0], errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read input").
			WithDetail("path", args[0])
	}
	return string(data), args[0], nil
}

// readDocument reads and parses the input. Invalid JSON is an INVALID_JSON
// error carrying the line and column.
func readDocument(cmd *cobra.Command, args []string) (jsonvalue.Value, string, error) {
	text, name, err := readInput(cmd, args)
	if err != nil {
		return jsonvalue.Value{}, name, err
	}
	defer profiling.Start("parse").Stop()
	res := format.Validate(text)
	if !res.Valid {
		return jsonvalue.Value{}, name, res.Error.Err()
	}
	return res.Value, name, nil
}
