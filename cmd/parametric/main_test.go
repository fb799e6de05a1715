package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PARAMETRIC_OUTPUT", "json")
	t.Setenv("PARAMETRIC_LANG", "en")
	t.Setenv("PARAMETRIC_LOG_LEVEL", "warn")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if len(args) > 0 && args[0] == "resolve" {
		args = append(args, "--env-file", filepath.Join(t.TempDir(), "none.env"))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const userSchema = `
fields:
  - key: name
    type: string
    filters: [trim]
    present: true
  - key: age
    type: integer
`

func TestResolve_JSONOutput(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)

	out, errOut, err := runCLI(t, `{"name":" Ann ","age":"7","x":1}`, "resolve", "--schema", schema)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.JSONEq(t, `{"name":"Ann","age":7}`, out)
}

func TestResolve_YAMLInputAndOutput(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)
	input := writeFile(t, "in.yaml", "name: Bo\nage: 30\n")

	out, _, err := runCLI(t, "", "resolve", "-s", schema, "-i", input, "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "age: 30\nname: Bo\n", out)
}

func TestResolve_DumpOutput(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)

	out, _, err := runCLI(t, `{"name":"Cy"}`, "resolve", "--schema", schema, "--output", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, `"name"`)
	assert.Contains(t, out, `"Cy"`)
}

func TestResolve_IssuesExitWithError(t *testing.T) {
	schema := writeFile(t, "user.yaml", userSchema)

	out, errOut, err := runCLI(t, `{"name":"  "}`, "resolve", "--schema", schema)
	assert.ErrorIs(t, err, errIssues)
	assert.JSONEq(t, `{}`, out)
	assert.Equal(t, "/name: is required and value must be present\n", errOut)
}

func TestResolve_Params(t *testing.T) {
	schema := writeFile(t, "q.yaml", "params:\n  - {key: ids, coerce: integer, multiple: true}\n")

	out, _, err := runCLI(t, `{"ids":"3,4"}`, "resolve", "--schema", schema)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":[3,4]}`, out)
}

func TestResolve_BadFlags(t *testing.T) {
	_, _, err := runCLI(t, "{}", "resolve")
	assert.Error(t, err)

	schema := writeFile(t, "user.yaml", userSchema)
	_, _, err = runCLI(t, "{}", "resolve", "--schema", schema, "--output", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
