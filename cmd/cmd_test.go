package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/paths"
)

const sample = `{"name": "jsonview", "tags": ["cli", "json"], "owner": {"name": "grove", "id": 7}}`

// run executes the root command with stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(paths.HomeEnv, t.TempDir())
	t.Setenv(config.EnvConfigPath, "")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTreeCommand(t *testing.T) {
	out, err := run(t, sample, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "root: Object(3)")
	assert.Contains(t, out, `name: "jsonview"`)
	assert.Contains(t, out, "id: 7")

	out, err = run(t, sample, "tree", "--level", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "owner: Object(2)")
	assert.NotContains(t, out, "id: 7")
}

func TestTreeSelectJSON(t *testing.T) {
	path := writeTemp(t, "doc.json", sample)
	out, err := run(t, "", "tree", path, "--select", "**/name", "--json")
	require.NoError(t, err)

	var rows []nodeOutput
	require.NoError(t, gojson.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "$.name", rows[0].JSONPath)
	assert.Equal(t, "$.owner.name", rows[1].JSONPath)
	assert.Equal(t, "string", rows[1].Type)
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, sample, "search", "grove", "--json")
	require.NoError(t, err)

	var rows []nodeOutput
	require.NoError(t, gojson.Unmarshal([]byte(out), &rows))
	var got []string
	for _, r := range rows {
		got = append(got, r.Path)
	}
	assert.Equal(t, []string{"owner/name"}, got)

	out, err = run(t, sample, "search", "^(cli|json)$", "--regex")
	require.NoError(t, err)
	assert.Contains(t, out, "$.tags.0")
	assert.Contains(t, out, "$.tags.1")
	assert.NotContains(t, out, "$.name")
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, `{"b":1,"a":[true,null]}`, "format", "--indent", "4")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"b\": 1,\n    \"a\": [\n        true,\n        null\n    ]\n}\n", out)

	out, err = run(t, "{ \"b\" : 1 ,\n \"a\": [ ] }", "format", "--minify")
	require.NoError(t, err)
	assert.Equal(t, "{\"b\":1,\"a\":[]}\n", out)

	_, err = run(t, `{"b":}`, "format")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON))
}

func TestEscapeUnescape(t *testing.T) {
	out, err := run(t, "say \"hi\"\nbye\n", "escape")
	require.NoError(t, err)
	assert.Equal(t, `"say \"hi\"\nbye"`+"\n", out)

	out, err = run(t, `"tab\there"`+"\n", "unescape")
	require.NoError(t, err)
	assert.Equal(t, "tab\there\n", out)

	_, err = run(t, "bare", "unescape")
	assert.True(t, errors.Is(err, errors.ErrCodeNotQuoted))
}

func TestValidateCommand(t *testing.T) {
	_, err := run(t, sample, "validate")
	require.NoError(t, err)

	out, err := run(t, "{\n  \"a\": ]\n}", "validate", "--json")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON))
	var res validateOutput
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	require.NotNil(t, res.Error)
	assert.Equal(t, 2, res.Error.Line)
}

func TestValidateSchema(t *testing.T) {
	schemaPath := writeTemp(t, "schema.json", `{
		"type": "object",
		"required": ["name", "version"],
		"properties": {"name": {"type": "string"}}
	}`)

	out, err := run(t, sample, "validate", "--schema", schemaPath, "--json")
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaMismatch))

	var res validateOutput
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Violations)
	assert.Contains(t, res.Violations[0].Message, "version")
}

func TestFollowCommand(t *testing.T) {
	path := writeTemp(t, "events.jsonl", `{"level": "info", "msg": "started"}
not json
{"level": "error", "msg": "disk full"}
`)
	out, err := run(t, "", "follow", path, "error", "--no-follow", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var rec lineMatches
	require.NoError(t, gojson.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, 3, rec.Line)
	require.NotEmpty(t, rec.Matches)
	assert.Equal(t, "level", rec.Matches[len(rec.Matches)-1].Path)

	_, err = run(t, "", "follow", path, "--no-follow")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestConfigCommands(t *testing.T) {
	out, err := run(t, "", "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"expand_level"`)

	cfgPath := writeTemp(t, "custom.yml", "theme: light\nexpand_level: 3\n")
	out, err = run(t, "", "config", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "EXPLICIT CONFIG")
	assert.Contains(t, out, "theme: light")
}

func TestPathsAndVersion(t *testing.T) {
	out, err := run(t, "", "paths", "--json")
	require.NoError(t, err)
	var p PathsOutput
	require.NoError(t, gojson.Unmarshal([]byte(out), &p))
	assert.NotEmpty(t, p.ConfigDir)
	assert.NotEmpty(t, p.LogFile)

	out, err = run(t, "", "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestViewWatchNeedsFile(t *testing.T) {
	_, err := run(t, sample, "view", "--watch")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
