package format

import (
	"strings"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Escape returns text as a quoted JSON string literal.
func Escape(text string) string {
	return jsonvalue.Quote(text)
}

// Unescape decodes a quoted JSON string literal such as "hello\nworld".
func Unescape(literal string) (string, error) {
	if !strings.HasPrefix(literal, `"`) || !strings.HasSuffix(literal, `"`) {
		return "", errors.New(errors.ErrCodeNotQuoted,
			`input must be a valid JSON string literal wrapped in quotes, e.g., "hello\nworld"`)
	}

	v, err := jsonvalue.ParseString(literal)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidLiteral,
			"invalid JSON string literal; make sure quotes and escapes are properly formatted")
	}
	if v.Kind() != jsonvalue.KindString {
		return "", errors.New(errors.ErrCodeNotString,
			"input must be a JSON string literal, not another JSON type").
			WithDetail("kind", v.Kind().String())
	}
	return v.Str(), nil
}
