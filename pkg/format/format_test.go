package format

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/errors"
)

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := Validate(`{"hello": "world"}`)
		require.True(t, r.Valid)
		assert.Nil(t, r.Error)
		got, ok := r.Value.Get("hello")
		require.True(t, ok)
		assert.Equal(t, "world", got.Str())
	})

	t.Run("blank input is null", func(t *testing.T) {
		for _, in := range []string{"", "   ", "\n\t"} {
			r := Validate(in)
			assert.True(t, r.Valid)
			assert.True(t, r.Value.IsNull())
		}
	})

	t.Run("invalid reports position", func(t *testing.T) {
		r := Validate(`{"hello": world}`)
		require.False(t, r.Valid)
		require.NotNil(t, r.Error)
		assert.Equal(t, 1, r.Error.Line)
		assert.NotEmpty(t, r.Error.Message)
		assert.True(t, errors.Is(r.Error.Err(), errors.ErrCodeInvalidJSON))
	})

	t.Run("grammar is strict", func(t *testing.T) {
		for _, in := range []string{`{"port": 08080}`, `[1.]`, `{"n": 1.e3}`, "{\"a\":\"x\ty\"}"} {
			r := Validate(in)
			assert.False(t, r.Valid, "%q", in)
			assert.Equal(t, in, Minify(in), "%q is returned unchanged", in)
		}

		r := Validate(`{"port": 08080}`)
		require.NotNil(t, r.Error)
		assert.Equal(t, 1, r.Error.Line)
		assert.Equal(t, 11, r.Error.Column)
	})

	t.Run("error on a later line", func(t *testing.T) {
		r := Validate("{\n  \"a\": 1,\n  \"b\": ]\n}")
		require.False(t, r.Valid)
		assert.Equal(t, 3, r.Error.Line)
	})
}

func TestPosition(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		line   int
		column int
	}{
		{"", 0, 1, 1},
		{"abc", 2, 1, 3},
		{"ab\ncd", 3, 2, 1},
		{"ab\ncd", 5, 2, 3},
		{"é\nxé", 4, 2, 2},
		{"é\nxé", 6, 2, 3},
		{"abc", 99, 1, 4},
	}

	for _, tt := range tests {
		line, column := Position(tt.text, tt.offset)
		assert.Equal(t, tt.line, line, "%q@%d", tt.text, tt.offset)
		assert.Equal(t, tt.column, column, "%q@%d", tt.text, tt.offset)
	}
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 1, LineCount(""))
	assert.Equal(t, 3, LineCount("a\nb\nc"))
}

func TestBeautify(t *testing.T) {
	in := `{"hello":"world","array":[1,2,3]}`

	out := Beautify(in, DefaultIndent)
	assert.Contains(t, out, "  \"hello\": \"world\"")
	assert.Contains(t, out, "  \"array\": [")
	assert.Equal(t, "{\n  \"hello\": \"world\",\n  \"array\": [\n    1,\n    2,\n    3\n  ]\n}", out)

	assert.Contains(t, Beautify(`{"hello":"world"}`, Spaces(4)), "    \"hello\": \"world\"")
	assert.Equal(t, "[\n\t1\n]", Beautify(`[1]`, Tab))
	assert.Equal(t, "{}", Beautify(`{ }`, Spaces(2)))

	assert.Equal(t, "not json", Beautify("not json", DefaultIndent), "invalid input is returned unchanged")
}

func TestMinify(t *testing.T) {
	in := "{\n  \"hello\": \"world\",\n  \"array\": [1, 2, 3]\n}"
	assert.Equal(t, `{"hello":"world","array":[1,2,3]}`, Minify(in))
	assert.Equal(t, "{oops", Minify("{oops"))
}

func TestFormat(t *testing.T) {
	in := `{"a":[true]}`
	tests := map[Style]string{
		StyleTwoSpaces:  "{\n  \"a\": [\n    true\n  ]\n}",
		StyleFourSpaces: "{\n    \"a\": [\n        true\n    ]\n}",
		StyleTabs:       "{\n\t\"a\": [\n\t\ttrue\n\t]\n}",
		StyleMinify:     `{"a":[true]}`,
	}
	for style, want := range tests {
		assert.Equal(t, want, Format(in, style), string(style))
	}

	st, err := ParseStyle("tabs")
	require.NoError(t, err)
	assert.Equal(t, StyleTabs, st)
	assert.Equal(t, "Tabs", st.Label())
	_, err = ParseStyle("3-spaces")
	assert.Error(t, err)
}

func TestIndent(t *testing.T) {
	tests := []struct {
		in   string
		want Indent
		unit string
	}{
		{"2", Spaces(2), "  "},
		{"4", Spaces(4), "    "},
		{"tab", Tab, "\t"},
		{"TABS", Tab, "\t"},
		{"", DefaultIndent, "  "},
	}
	for _, tt := range tests {
		got, err := ParseIndent(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.unit, got.Unit())
	}

	_, err := ParseIndent("eleven")
	assert.Error(t, err)
	_, err = ParseIndent("11")
	assert.Error(t, err)

	assert.Equal(t, 10, len(Spaces(20).Unit()))
}

func TestIndentFlag(t *testing.T) {
	indent := DefaultIndent
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&indent, "indent", "indentation")

	require.NoError(t, fs.Parse([]string{"--indent", "tab"}))
	assert.Equal(t, Tab, indent)
	assert.Equal(t, "tab", fs.Lookup("indent").Value.String())

	assert.Error(t, fs.Parse([]string{"--indent", "x"}))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `"Hello\nWorld"`, Escape("Hello\nWorld"))
	assert.Equal(t, `"say \"hi\"\t\\"`, Escape("say \"hi\"\t\\"))
	assert.Equal(t, `"\u0001"`, Escape("\x01"))
	assert.Equal(t, `"héllo"`, Escape("héllo"))
}

func TestUnescape(t *testing.T) {
	got, err := Unescape(`"Hello\nWorld"`)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", got)

	got, err = Unescape(`"é\t"`)
	require.NoError(t, err)
	assert.Equal(t, "é\t", got)

	tests := []struct {
		in   string
		code errors.ErrorCode
	}{
		{"Hello World", errors.ErrCodeNotQuoted},
		{`"unterminated`, errors.ErrCodeNotQuoted},
		{`"`, errors.ErrCodeInvalidLiteral},
		{`"bad \q escape"`, errors.ErrCodeInvalidLiteral},
		{`"a" + "b"`, errors.ErrCodeInvalidLiteral},
	}
	for _, tt := range tests {
		_, err := Unescape(tt.in)
		require.Error(t, err, tt.in)
		assert.Equal(t, tt.code, errors.GetCode(err), tt.in)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", "line\nbreak", "quote\"", "\x00\x1f", "emoji 🎉"} {
		got, err := Unescape(Escape(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
