package format

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// ValidationError locates a syntax error in a document. Line and Column are
// 1-based; Column counts characters, not bytes.
type ValidationError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Offset  int    `json:"position"`
}

// Err converts the validation error to a coded error.
func (e *ValidationError) Err() error {
	return errors.InvalidJSON(stderrors.New(e.Message), e.Line, e.Column).
		WithDetail("position", e.Offset)
}

// Result is the outcome of Validate.
type Result struct {
	Valid bool
	Value jsonvalue.Value
	Error *ValidationError
}

// Validate parses text. Blank input is valid and yields null.
func Validate(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Valid: true, Value: jsonvalue.Null()}
	}

	v, err := jsonvalue.ParseString(text)
	if err == nil {
		return Result{Valid: true, Value: v}
	}

	offset := 0
	var se *jsonvalue.SyntaxError
	if stderrors.As(err, &se) {
		offset = se.Offset
	}
	line, column := Position(text, offset)
	return Result{
		Error: &ValidationError{
			Line:    line,
			Column:  column,
			Message: err.Error(),
			Offset:  offset,
		},
	}
}

// Position converts a byte offset into a 1-based line and column.
func Position(text string, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line = strings.Count(prefix, "\n") + 1
	lastLine := prefix[strings.LastIndexByte(prefix, '\n')+1:]
	return line, utf8.RuneCountInString(lastLine) + 1
}

// LineCount is the number of lines in text; the empty text has one.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}
