// Package report renders a derived dataset view as a human-readable summary,
// for the CLI report mode and the dashboard's summary panel.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pulseboard/internal/view"
)

// Markdown renders one view as a markdown report.
func Markdown(v *view.DatasetView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", v.DisplayName)
	if v.CanonicalName != "" && v.CanonicalName != v.DisplayName {
		fmt.Fprintf(&b, "Category: **%s**\n\n", v.CanonicalName)
	}
	fmt.Fprintf(&b, "%d rows (%d after filters)\n\n", v.RowCount, v.FilteredCount)

	b.WriteString("## KPIs\n\n")
	for _, k := range v.KPIs {
		if k.OK {
			fmt.Fprintf(&b, "- %s: %.2f\n", k.Name, k.Value)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", k.Name, k.Reason)
		}
	}
	if v.Recovery.OK {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", v.Recovery.Name, v.Recovery.Value)
	}
	b.WriteString("\n")

	if len(v.ByCategory) > 0 {
		fmt.Fprintf(&b, "## By %s\n\n", v.CategoryCol)
		b.WriteString("| Group | Total | Count | Average |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, bucket := range v.ByCategory {
			fmt.Fprintf(&b, "| %s | %.2f | %d | %.2f |\n", bucket.Key, bucket.Total, bucket.Count, bucket.Average)
		}
		b.WriteString("\n")
	}

	if v.Summary != nil {
		fmt.Fprintf(&b, "## %s Distribution\n\n", v.Summary.Column)
		fmt.Fprintf(&b, "- Count: %d\n", v.Summary.Count)
		fmt.Fprintf(&b, "- Min: %.2f\n", v.Summary.Min)
		fmt.Fprintf(&b, "- Max: %.2f\n", v.Summary.Max)
		fmt.Fprintf(&b, "- Mean: %.2f\n", v.Summary.Mean)
		fmt.Fprintf(&b, "- Median: %.2f\n", v.Summary.Median)
		fmt.Fprintf(&b, "- Std Dev: %.2f\n", v.Summary.StdDev)
		b.WriteString("\n")
	}

	if len(v.Series) > 0 {
		b.WriteString("## Trend\n\n")
		b.WriteString("| Bucket | Total | Rows |\n")
		b.WriteString("|---|---|---|\n")
		for _, p := range v.Series {
			fmt.Fprintf(&b, "| %s | %.2f | %d |\n", p.Key, p.Total, p.Count)
		}
		b.WriteString("\n")
	}

	if len(v.Anomalies) > 0 {
		b.WriteString("## Anomalies\n\n")
		for _, a := range v.Anomalies {
			fmt.Fprintf(&b, "- %s: %.2f (z=%.2f, p=%.4f)\n", a.Key, a.Value, a.Z, a.PValue)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report as an HTML fragment.
func HTML(v *view.DatasetView) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(v)))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
