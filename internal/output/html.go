package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/report"
)

// HTMLFormatter renders a standalone HTML report. Diagnostics are grouped
// by cell with a summary table on top. The report body is assembled as
// markdown and converted, which keeps the table and escaping handling in
// one place.
type HTMLFormatter struct {
	Title string
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
code { background: #f4f4f4; padding: 0.1em 0.3em; }
</style>
</head>
<body>
`

const htmlFooter = "</body>\n</html>\n"

// Format writes the full HTML document to w.
func (f *HTMLFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	title := f.Title
	if title == "" {
		title = "nblint report"
	}
	if _, err := fmt.Fprintf(w, htmlHeader, title); err != nil {
		return err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(f.markdown(title, diagnostics)), w); err != nil {
		return err
	}

	_, err := io.WriteString(w, htmlFooter)
	return err
}

func (f *HTMLFormatter) markdown(title string, diags []lint.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	s := report.Stats(diags)
	fmt.Fprintf(&b, "%d finding(s): %d error(s), %d warning(s), %d info.\n\n",
		s.Total, s.BySeverity[lint.Error], s.BySeverity[lint.Warning], s.BySeverity[lint.Info])

	if s.Total == 0 {
		return b.String()
	}

	b.WriteString("| Rule | Count |\n|---|---|\n")
	byRule := report.GroupByRule(diags)
	for _, id := range byRule.Order {
		fmt.Fprintf(&b, "| %s | %d |\n", id, len(byRule.ByRule[id]))
	}
	b.WriteString("\n")

	byCell := report.GroupByCell(diags)
	for _, idx := range byCell.Order {
		fmt.Fprintf(&b, "## Cell %d\n\n", idx)
		for _, d := range byCell.ByCell[idx] {
			fmt.Fprintf(&b, "- **%s** `%s` line %d: %s\n",
				d.Severity, d.RuleID, d.CellLine, d.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}
