package cli

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/spf-project/spf/internal/host"
	"github.com/spf-project/spf/internal/loader"
	"github.com/spf-project/spf/internal/option"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// PluginReport is the printable form of one registered plugin.
type PluginReport struct {
	Name       string         `json:"name" yaml:"name"`
	Order      int            `json:"order" yaml:"order"`
	Positional []any          `json:"positional" yaml:"positional"`
	Named      map[string]any `json:"named" yaml:"named"`
}

// NewReports converts a load result to reports in registration order.
func NewReports(result loader.Result) []PluginReport {
	reports := make([]PluginReport, 0, len(result))
	for _, assoc := range orderedAssociations(result) {
		reg := assoc.Registration
		report := PluginReport{
			Name:       reg.PluginName,
			Order:      reg.Order,
			Positional: make([]any, 0, len(reg.Options.Positional)),
			Named:      make(map[string]any, len(reg.Options.Named)),
		}
		for _, v := range reg.Options.Positional {
			report.Positional = append(report.Positional, reportValue(v))
		}
		for k, v := range reg.Options.Named {
			report.Named[k] = reportValue(v)
		}
		reports = append(reports, report)
	}
	return reports
}

// reportValue returns v as a plain value. Infinite and NaN floats become
// their literal text, which every output format can encode.
func reportValue(v option.Value) any {
	if f, ok := v.Float(); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return v.String()
	}
	return v.Interface()
}

// formatArgs renders options the way a call would spell them:
// a, b, key=value.
func formatArgs(opts option.Options) string {
	parts := make([]string, 0, opts.Len())
	for _, v := range opts.Positional {
		parts = append(parts, v.String())
	}
	for _, k := range opts.Keys {
		parts = append(parts, k+"="+opts.Named[k].String())
	}
	return strings.Join(parts, ", ")
}

// renderTable writes a header row and rows aligned in columns. Alignment
// happens before styling so escape sequences do not skew column widths.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	lines[0] = headerStyle.Render(strings.TrimRight(lines[0], " "))
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// orderedAssociations returns the associations of result in registration
// order.
func orderedAssociations(result loader.Result) []host.Association {
	assocs := slices.Collect(maps.Values(result))
	slices.SortFunc(assocs, func(a, b host.Association) int {
		return cmp.Compare(a.Registration.Order, b.Registration.Order)
	})
	return assocs
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
