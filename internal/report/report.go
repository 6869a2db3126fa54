package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"benchmatch/internal/table"
)

// RunInfo carries the metadata stamped into the HTML report header.
type RunInfo struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
}

// Section pairs a result table with its heading and review note.
type Section struct {
	Title string
	Note  string
	Table *table.Table
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>benchmatch run report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.3em 0.6em; text-align: left; }
th { background: #eee; }
p.note { color: #555; }
p.empty { color: #555; font-style: italic; }
</style>
</head>
<body>
<h1>benchmatch run report</h1>
<p>Run {{.Info.RunID}} started {{.Started}} and took {{.Info.Duration}}.</p>
{{range .Sections}}<h2>{{.Title}} ({{.Rows}} rows)</h2>
<p class="note">{{.Note}}</p>
{{if .Rows}}{{.HTML}}{{else}}<p class="empty">No rows.</p>{{end}}
{{end}}</body>
</html>
`))

type renderedSection struct {
	Title string
	Note  string
	Rows  int
	HTML  template.HTML
}

// WriteHTML renders the run report to path. Table markup comes from
// go-pretty's HTML renderer; the surrounding page is a small template.
func WriteHTML(path string, info RunInfo, sections []Section) error {
	rendered := make([]renderedSection, 0, len(sections))
	for _, section := range sections {
		rendered = append(rendered, renderedSection{
			Title: section.Title,
			Note:  section.Note,
			Rows:  section.Table.Len(),
			HTML:  template.HTML(renderHTMLTable(section.Table)),
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	data := struct {
		Info     RunInfo
		Started  string
		Sections []renderedSection
	}{
		Info:     info,
		Started:  info.StartedAt.Format(time.RFC3339),
		Sections: rendered,
	}
	if err := reportTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return file.Close()
}

func renderHTMLTable(tbl *table.Table) string {
	tw := newWriter(tbl, tbl.Len())
	tw.Style().Format.Header = text.FormatDefault
	return tw.RenderHTML()
}

// Preview renders up to maxRows of a table for console display.
func Preview(tbl *table.Table, maxRows int) string {
	tw := newWriter(tbl, maxRows)
	tw.SetStyle(prettytable.StyleRounded)
	// Column names are canonical lowercase identifiers; keep them and the
	// truncation footer as-is.
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	return tw.Render()
}

func newWriter(tbl *table.Table, maxRows int) prettytable.Writer {
	tw := prettytable.NewWriter()
	columns := tbl.Columns()
	header := make(prettytable.Row, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	tw.AppendHeader(header)

	limit := tbl.Len()
	if maxRows >= 0 && maxRows < limit {
		limit = maxRows
	}
	for i := 0; i < limit; i++ {
		cells := tbl.Row(i).Cells()
		row := make(prettytable.Row, len(cells))
		for ci, cell := range cells {
			row[ci] = cell
		}
		tw.AppendRow(row)
	}
	if limit < tbl.Len() {
		tw.AppendFooter(prettytable.Row{fmt.Sprintf("… %d more rows", tbl.Len()-limit)})
	}
	return tw
}
