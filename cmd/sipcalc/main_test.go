package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/sipcalc/internal/config"
)

const fixture = "../../internal/config/testdata/scenarios.yaml"

// resetFlags restores every flag to its default; cobra keeps flag values
// between Execute calls on the same command tree
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "sipcalc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	for _, name := range []string{"calculate", "validate", "compare", "serve", "init", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCalculate_Console(t *testing.T) {
	out, _, err := run(t, "calculate", fixture, "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Base")
	assert.Contains(t, out, "Retirement Drawdown")
}

func TestCalculate_SingleScenarioJSON(t *testing.T) {
	out, _, err := run(t, "calculate", fixture, "--format", "json", "--scenario", "Base")
	require.NoError(t, err)
	assert.Contains(t, out, `"source"`)
	assert.Contains(t, out, `"Base"`)
	assert.NotContains(t, out, "Retirement Drawdown")
}

func TestCalculate_Errors(t *testing.T) {
	_, _, err := run(t, "calculate", fixture, "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = run(t, "calculate", fixture, "--scenario", "Missing")
	assert.ErrorContains(t, err, "not found")

	_, _, err = run(t, "calculate", "does-not-exist.yaml")
	assert.Error(t, err)

	_, _, err = run(t, "calculate")
	assert.Error(t, err, "input file is required")
}

func TestCalculate_StrictRejectsInvalidValues(t *testing.T) {
	invalid := "../../internal/config/testdata/invalid_values.yaml"

	_, _, err := run(t, "calculate", invalid, "--format", "console-lite")
	require.NoError(t, err, "permissive mode clamps values")

	_, _, err = run(t, "calculate", invalid, "--strict")
	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCalculate_WritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	out, stderr, err := run(t, "calculate", fixture, "--format", "yearly-csv", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Scenario,"), "yearly CSV header")
}

func TestCalculate_PDFGoesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	_, _, err := run(t, "calculate", fixture, "--format", "pdf", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 scenarios)")

	out, _, err = run(t, "validate", "../../internal/config/testdata/invalid_values.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "  - ")
}

func TestCompare(t *testing.T) {
	out, _, err := run(t, "compare", fixture, "--base", "Base", "--with", "stepup_10pct,fees_1pct")
	require.NoError(t, err)
	assert.Contains(t, out, "Base_stepup_10pct")
	assert.Contains(t, out, "Base_fees_1pct")

	out, _, err = run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"baseScenarioName": "Base"`)

	out, _, err = run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Base_no_fees")

	out, _, err = run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "compact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Base: Base | Base_no_fees: "))
}

func TestCompare_Errors(t *testing.T) {
	_, _, err := run(t, "compare")
	assert.ErrorContains(t, err, "input file required")

	_, _, err = run(t, "compare", fixture, "--with", "no_fees")
	assert.ErrorContains(t, err, "--base")

	_, _, err = run(t, "compare", fixture, "--base", "Base")
	assert.ErrorContains(t, err, "nothing to compare")

	_, _, err = run(t, "compare", fixture, "--base", "Base", "--transform", "set_tax")
	assert.ErrorContains(t, err, "invalid transform")

	_, _, err = run(t, "compare", fixture, "--base", "Base", "--with", "bogus")
	assert.ErrorContains(t, err, "template bogus not found")

	_, _, err = run(t, "compare", fixture, "--base", "Nope", "--with", "no_fees")
	assert.ErrorContains(t, err, "base scenario Nope not found")

	_, _, err = run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCompare_TransformsAndScenarios(t *testing.T) {
	out, _, err := run(t, "compare", fixture, "--base", "Base",
		"--transform", "set_step_up:value=15", "--transform", "adjust_return:delta=1",
		"--scenarios", "Retirement Drawdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Base_set_step_up")
	assert.Contains(t, out, "Base_adjust_return")
	assert.Contains(t, out, "Retirement Drawdown")
}

func TestCompare_ReportFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmp.html")
	_, stderr, err := run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "html", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Base_no_fees")

	csvPath := filepath.Join(t.TempDir(), "cmp.csv")
	_, stderr, err = run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "csv", "-o", csvPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Comparison written to")
	data, err = os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Base_no_fees")
}

func TestCompare_OutputWriteError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "cmp.csv")
	_, stderr, err := run(t, "compare", fixture, "--base", "Base", "--with", "no_fees", "--format", "csv", "-o", missing)
	assert.ErrorContains(t, err, "failed to write comparison")
	assert.NotContains(t, stderr, "Comparison written to")
}

func TestCompare_ListTemplates(t *testing.T) {
	out, _, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
	assert.Contains(t, out, "stepup_5pct")
	assert.Contains(t, out, "set_withdrawal")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	out, _, err := run(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote starter scenarios")

	cfg, err := config.NewInputParser().LoadStrict(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Step-Up"}, cfg.ScenarioNames())

	_, _, err = run(t, "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sipcalc dev")
}
