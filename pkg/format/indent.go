package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Indent is the unit of indentation used by Beautify.
type Indent struct {
	tab    bool
	spaces int
}

var (
	// Tab indents with one tab character per level.
	Tab = Indent{tab: true}
	// DefaultIndent is two spaces.
	DefaultIndent = Spaces(2)
)

// Spaces indents with n spaces per level. JSON.stringify clamps to 10.
func Spaces(n int) Indent {
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return Indent{spaces: n}
}

// ParseIndent accepts "tab", "tabs", "\t" or a space count.
func ParseIndent(s string) (Indent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tab", "tabs", "\t":
		return Tab, nil
	case "":
		return DefaultIndent, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 10 {
		return Indent{}, fmt.Errorf("invalid indent %q: want 0-10 or \"tab\"", s)
	}
	return Spaces(n), nil
}

// Unit is the literal string inserted per nesting level.
func (i Indent) Unit() string {
	if i.tab {
		return "\t"
	}
	return strings.Repeat(" ", i.spaces)
}

// String implements pflag.Value and fmt.Stringer.
func (i Indent) String() string {
	if i.tab {
		return "tab"
	}
	return strconv.Itoa(i.spaces)
}

// Set implements pflag.Value.
func (i *Indent) Set(s string) error {
	parsed, err := ParseIndent(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Type implements pflag.Value.
func (i *Indent) Type() string {
	return "indent"
}

// MarshalText lets encoders write the indent as "2", "4" or "tab".
func (i Indent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText accepts the forms understood by ParseIndent.
func (i *Indent) UnmarshalText(b []byte) error {
	return i.Set(string(b))
}
