package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sipcalc/internal/api"
	"github.com/rgehrsitz/sipcalc/internal/calculation"
	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/config"
	"github.com/rgehrsitz/sipcalc/internal/domain"
	"github.com/rgehrsitz/sipcalc/internal/output"
	"github.com/rgehrsitz/sipcalc/internal/transform"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sipcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newEngine(cmd *cobra.Command) *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

var rootCmd = &cobra.Command{
	Use:   "sipcalc",
	Short: "SIP investment projection calculator",
	Long: `Month-by-month projection of a systematic investment plan: contributions,
step-ups, lump sums, withdrawals, inflation, tax and fund fees, with
scenario comparison, report export and an HTTP API.`,
	SilenceUsage: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Project every scenario in a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		load := parser.LoadFromFile
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			load = parser.LoadStrict
		}
		configData, err := load(inputFile)
		if err != nil {
			return err
		}

		if name, _ := cmd.Flags().GetString("scenario"); name != "" {
			scenario, err := configData.FindScenario(name)
			if err != nil {
				return err
			}
			configData = &domain.Configuration{Scenarios: []domain.Scenario{*scenario}}
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format %q (valid: %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		results, err := newEngine(cmd).RunScenarios(cmd.Context(), configData)
		if err != nil {
			return err
		}
		results.Source = inputFile

		outPath, _ := cmd.Flags().GetString("output")
		return emitReport(cmd, f, results, outputFormat, outPath)
	},
}

// emitReport writes report to outPath, to a timestamped file for binary
// formats, or to stdout
func emitReport(cmd *cobra.Command, f output.Formatter, report *domain.ProjectionReport, format, outPath string) error {
	switch {
	case outPath != "":
		if err := output.WriteFormattedTo(f, report, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outPath)
	case output.IsBinary(format):
		filename, err := output.WriteFormatted(f, report, output.FileExtension(format))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", filename)
	default:
		data, err := f.Format(report)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}
	return nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		configData, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}
		if err := parser.ValidateConfiguration(configData); err != nil {
			var cfgErr *config.ConfigurationError
			if errors.As(err, &cfgErr) {
				for _, issue := range cfgErr.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", issue)
				}
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios)\n", inputFile, len(configData.Scenarios))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare a scenario against what-if alternatives",
	Long: `Compare a base scenario against alternatives produced by built-in
templates, ad-hoc transforms or other scenarios of the same file.

Table, compact, csv and json print the comparison itself. Any report format
(console, yearly-csv, html, pdf, ...) renders the base scenario and every
alternative as a full projection report.

Examples:
  sipcalc compare plans.yaml --base Base --with stepup_10pct,fees_1pct
  sipcalc compare plans.yaml --base Base --with no_withdrawal --format csv
  sipcalc compare plans.yaml --base Base --transform set_step_up:value=15
  sipcalc compare plans.yaml --base Base --scenarios Step-Up --format html -o cmp.html
  sipcalc compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintf(out, "\nTransforms (--transform name:key=value,...):\n  %s\n",
				strings.Join(transform.NewTransformRegistry().List(), ", "))
			return nil
		}
		if len(args) == 0 {
			return errors.New("input file required for comparison (use --list-templates to see available templates)")
		}
		inputFile := args[0]

		baseScenarioName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		scenariosStr, _ := cmd.Flags().GetString("scenarios")
		outputFormat, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		if baseScenarioName == "" {
			return errors.New("--base flag is required to specify the base scenario name")
		}
		opts := compare.CompareOptions{
			BaseScenarioName: baseScenarioName,
			Templates:        transform.ParseTemplateList(templatesStr),
			Transforms:       transforms,
			Scenarios:        transform.ParseTemplateList(scenariosStr),
		}
		if len(opts.Templates)+len(opts.Transforms)+len(opts.Scenarios) == 0 {
			return errors.New("nothing to compare: use --with, --transform or --scenarios (or --list-templates)")
		}

		configData, err := config.NewInputParser().LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		comparisonSet, err := compare.NewCompareEngine(newEngine(cmd)).Compare(cmd.Context(), configData, opts)
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		comparisonSet.ConfigPath = inputFile

		switch strings.ToLower(outputFormat) {
		case "table", "compact", "csv", "json", "":
			if outPath != "" {
				if err := writeComparisonFile(outPath, comparisonSet, outputFormat); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Comparison written to %s\n", outPath)
				return nil
			}
			return writeComparison(cmd.OutOrStdout(), comparisonSet, outputFormat)
		}

		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json, %s)", outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}
		return emitReport(cmd, f, comparisonSet.ToProjectionReport(), outputFormat, outPath)
	},
}

// writeComparisonFile renders set in full before touching path so a render
// error never leaves a partial file behind
func writeComparisonFile(path string, set *compare.ComparisonSet, format string) error {
	var buf bytes.Buffer
	if err := writeComparison(&buf, set, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	return nil
}

func writeComparison(w io.Writer, set *compare.ComparisonSet, format string) error {
	var out string
	var err error
	switch strings.ToLower(format) {
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
	default:
		out = (&compare.TableFormatter{}).Format(set)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		debugMode, _ := cmd.Flags().GetBool("debug")

		opts := api.Options{
			Addr:           addr,
			AllowedOrigins: origins,
			Logger:         simpleCLILogger{},
			AccessLog:      cmd.ErrOrStderr(),
			Debug:          debugMode,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return api.ListenAndServe(ctx, opts)
	},
}

var initCmd = &cobra.Command{
	Use:   "init [output-file]",
	Short: "Write a starter scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if force, _ := cmd.Flags().GetBool("force"); !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := config.SaveConfiguration(starterConfiguration(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter scenarios to %s\n", path)
		return nil
	},
}

// starterConfiguration is a plain SIP plus a step-up variant with a goal
func starterConfiguration() *domain.Configuration {
	stepUp := domain.DefaultPlan()
	stepUp.InvestmentPeriodYears = 15
	stepUp.StepUp = domain.StepUpConfig{Enabled: true, Type: domain.StepUpPercentage, Value: decimal.NewFromInt(10)}
	stepUp.Inflation = domain.InflationConfig{Enabled: true, AnnualRatePercent: decimal.NewFromInt(6)}
	stepUp.Goal = domain.GoalConfig{Enabled: true, Amount: decimal.NewFromInt(5000000)}

	return &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Base", Description: "SIP of 5,000 a month at 12% for ten years", Plan: domain.DefaultPlan()},
		{Name: "Step-Up", Description: "10% yearly step-up over fifteen years with 6% inflation", Plan: stepUp},
	}}
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+
		"; aliases: "+strings.Join(output.AvailableFormatAliases(), ", ")+")")
	calculateCmd.Flags().StringP("scenario", "s", "", "Only project the named scenario")
	calculateCmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	calculateCmd.Flags().Bool("strict", false, "Reject out-of-range values instead of clamping them")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base scenario name to compare against (required)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform name:key=value,... (repeatable)")
	compareCmd.Flags().String("scenarios", "", "Comma-separated list of other scenarios to compare")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, or any report format)")
	compareCmd.Flags().StringP("output", "o", "", "Write the output to this file instead of stdout")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	serveCmd.Flags().String("addr", api.DefaultAddr, "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable; default any)")
	serveCmd.Flags().Bool("debug", false, "Run gin in debug mode")

	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
