package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations are pure serializations of the projection report.
type Formatter interface {
	Format(report *domain.ProjectionReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ProjectionReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ProjectionReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file with extension.
func WriteFormatted(f Formatter, report *domain.ProjectionReport, ext string) (string, error) {
	filename := fmt.Sprintf("sipcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := WriteFormattedTo(f, report, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFormattedTo runs a formatter and writes its output to path.
func WriteFormattedTo(f Formatter, report *domain.ProjectionReport, path string) error {
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	MonthlyCSVExporter{},
	YearlyCSVExporter{},
	JSONFormatter{},
	HTMLFormatter{},
	PDFFormatter{},
}

// fileExtensions maps canonical formatter names to output file extensions.
var fileExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"yearly-csv":   "csv",
	"json":         "json",
	"html":         "html",
	"pdf":          "pdf",
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// FileExtension returns the extension used when a formatter writes to disk.
func FileExtension(name string) string {
	if ext, ok := fileExtensions[NormalizeFormatName(name)]; ok {
		return ext
	}
	return "txt"
}

// IsBinary reports whether a format should not be written to a terminal.
func IsBinary(name string) bool {
	return NormalizeFormatName(name) == "pdf"
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"summary":         "console-lite",
	"monthly-csv":     "csv",
	"csv-monthly":     "csv",
	"csv-yearly":      "yearly-csv",
	"html-report":     "html",
	"json-pretty":     "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
