// Package format implements the text-level operations on JSON documents:
// validation with error positions, pretty-printing, minifying and string
// literal escaping.
//
// Beautify and Minify never fail. Invalid input is returned unchanged so a
// caller can apply them to whatever the user typed.
package format

import (
	"fmt"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Style is one of the formatting presets offered to users.
type Style string

const (
	StyleTwoSpaces  Style = "2-spaces"
	StyleFourSpaces Style = "4-spaces"
	StyleTabs       Style = "tabs"
	StyleMinify     Style = "minify"
)

// Styles lists the presets in display order.
var Styles = []Style{StyleTwoSpaces, StyleFourSpaces, StyleTabs, StyleMinify}

// Label is the human-readable name of a style.
func (s Style) Label() string {
	switch s {
	case StyleTwoSpaces:
		return "2 Spaces"
	case StyleFourSpaces:
		return "4 Spaces"
	case StyleTabs:
		return "Tabs"
	case StyleMinify:
		return "Minify"
	}
	return string(s)
}

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	for _, st := range Styles {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown format style %q", s)
}

// Beautify re-renders text with one indent unit per nesting level.
func Beautify(text string, indent Indent) string {
	v, err := jsonvalue.ParseString(text)
	if err != nil {
		return text
	}
	return jsonvalue.Marshal(v, indent.Unit())
}

// Minify re-renders text without insignificant whitespace.
func Minify(text string) string {
	v, err := jsonvalue.ParseString(text)
	if err != nil {
		return text
	}
	return jsonvalue.Marshal(v, "")
}

// Format applies a style preset. Unknown styles use two spaces.
func Format(text string, style Style) string {
	switch style {
	case StyleFourSpaces:
		return Beautify(text, Spaces(4))
	case StyleTabs:
		return Beautify(text, Tab)
	case StyleMinify:
		return Minify(text)
	default:
		return Beautify(text, Spaces(2))
	}
}
