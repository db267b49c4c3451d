package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/schema"
	"github.com/grovetools/jsonview/tui/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message and a hint chosen by the error's code, and returns
// err unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	fail := func(format string, args ...interface{}) {
		fmt.Fprintf(h.Out, "%s %s\n", t.Error.Render(theme.IconError), t.Error.Render(fmt.Sprintf(format, args...)))
	}
	hint := func(format string, args ...interface{}) {
		fmt.Fprintln(h.Out, t.Muted.Render(fmt.Sprintf(format, args...)))
	}

	var coded *errors.CodedError
	stderrors.As(err, &coded)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fail("Configuration file not found: %v", coded.Details["path"])
		hint("Check the --config flag or the %s environment variable.", "JSONVIEW_CONFIG")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fail("%s", coded.Message)
		if coded.Cause != nil {
			fmt.Fprintln(h.Out, coded.Cause.Error())
		}
		hint("Run 'jsonview config schema' to see the accepted settings.")

	case errors.ErrCodeInvalidJSON:
		fail("Invalid JSON at line %v, column %v", coded.Details["line"], coded.Details["column"])
		if coded.Cause != nil {
			fmt.Fprintln(h.Out, coded.Cause.Error())
		}

	case errors.ErrCodeNotQuoted, errors.ErrCodeNotString, errors.ErrCodeInvalidLiteral:
		fail("%s", coded.Message)
		hint("Unescape expects a JSON string literal such as \"a\\nb\". Use 'jsonview escape' to produce one.")

	case errors.ErrCodeSchemaInvalid:
		fail("Schema %v could not be compiled", coded.Details["schema"])
		if coded.Cause != nil {
			fmt.Fprintln(h.Out, coded.Cause.Error())
		}

	case errors.ErrCodeSchemaMismatch:
		fail("Document does not match schema %v", coded.Details["schema"])
		for _, v := range schema.Violations(coded) {
			fmt.Fprintln(h.Out, v.String())
		}

	default:
		fail("Error: %v", err)
	}

	if h.Verbose && coded != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", coded.ToJSON())
	}
	return err
}

// Execute runs the root command. Coded errors go through the ErrorHandler;
// anything else, such as a bad flag, gets the short styled error.
func Execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = root
	}
	if errors.GetCode(err) == "" {
		PrintError(cmd, err)
		return err
	}
	return NewErrorHandler(GetOptions(cmd).Verbose).Handle(err)
}
