package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mono/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "mono.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\ncolor = \"never\"\n[repl]\nbanner = false\n"), 0o644))
	t.Setenv(config.EnvVar, cfgPath)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.mono")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun(t *testing.T) {
	path := writeSource(t, "x = 5\ny = x * 2\ny + 1\n")

	out, _, err := execute(t, "", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)
	assert.True(t, color.NoColor)
}

func TestRunNoneResultPrintsNothing(t *testing.T) {
	out, _, err := execute(t, "", "run", writeSource(t, "none\n"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunReportsRuntimeError(t *testing.T) {
	path := writeSource(t, "total = 1\ntotl + 1\n")

	out, errOut, err := execute(t, "", "run", path)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error[E0301]: undefined variable 'totl'")
	assert.Contains(t, errOut, path+":2:1")
	assert.Contains(t, errOut, "did you mean 'total'?")
}

func TestRunTokens(t *testing.T) {
	out, _, err := execute(t, "", "run", "-t", writeSource(t, "a >= 1"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "IDENTIFIER")
	assert.Contains(t, lines[1], "GREATER_EQUAL")
	assert.Contains(t, lines[2], "=> 1")
	assert.Contains(t, lines[3], "EOF")
}

func TestRunTokensLexError(t *testing.T) {
	_, errOut, err := execute(t, "", "run", "--tokens", writeSource(t, `"abc`))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "E0102")
}

func TestRunAST(t *testing.T) {
	out, _, err := execute(t, "", "run", "-p", writeSource(t, "x = 1 + 2"))
	require.NoError(t, err)
	assert.Equal(t, `Program [1:1-1:10]
  AssignExpr x [1:1-1:10]
    BinaryExpr "+" [1:5-1:10]
      IntLiteral 1 [1:5-1:6]
      IntLiteral 2 [1:9-1:10]
`, out)
}

func TestRunASTYAML(t *testing.T) {
	out, _, err := execute(t, "", "run", "-p", "--format", "yaml", writeSource(t, "-2"))
	require.NoError(t, err)
	assert.Contains(t, out, "type: Program")
	assert.Contains(t, out, "type: UnaryExpr")
	assert.Contains(t, out, "operand:")
	assert.Contains(t, out, "value: 2")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "", "run", "-p", "--format", "json", writeSource(t, "1"))
	assert.Error(t, err)
}

func TestRunMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "run", filepath.Join(t.TempDir(), "missing.mono"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRepl(t *testing.T) {
	out, _, err := execute(t, "a = 2\na ** 10\nquit\n", "repl")
	require.NoError(t, err)
	assert.Equal(t, ">> 2\n>> 1024\n>> ", out)
}

func TestFmt(t *testing.T) {
	path := writeSource(t, "x=1\n\n\n\ny=x+2")

	out, _, err := execute(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n\ny = x + 2\n", out)

	_, _, err = execute(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n\ny = x + 2\n", string(data))
}

func TestFmtSyntaxError(t *testing.T) {
	_, errOut, err := execute(t, "", "fmt", writeSource(t, "x = (1 +"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "syntax error")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*1e6))
	assert.Equal(t, "250ns", formatDuration(250))
}
