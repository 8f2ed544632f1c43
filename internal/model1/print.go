package model1

import (
	"html/template"
	"io"
)

var printTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
table { border-collapse: collapse; width: 100%; font-family: sans-serif; font-size: 12px; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; vertical-align: top; }
img, video { max-width: 160px; max-height: 120px; }
</style>
</head>
<body onload="window.print()">
<h3>{{ .Title }}</h3>
<table>
<thead><tr>{{ range .Labels }}<th>{{ . }}</th>{{ end }}</tr></thead>
<tbody>
{{- range .Rows }}
<tr>{{ range . }}<td>
{{- if eq .Kind "image" }}<img src="{{ .URL }}" alt="{{ .Text }}">
{{- else if eq .Kind "video" }}<video controls src="{{ .URL }}"></video>
{{- else if eq .Kind "audio" }}<audio controls src="{{ .URL }}"></audio>
{{- else if eq .Kind "document" }}<a href="{{ .URL }}" target="_blank">{{ .Text }}</a>
{{- else }}{{ .Text }}{{ end -}}
</td>{{ end }}</tr>
{{- else }}
<tr><td colspan="{{ len .Labels }}">No data found</td></tr>
{{- end }}
</tbody>
</table>
</body>
</html>
`))

type printCell struct {
	Kind string
	Text string
	URL  template.URL
}

// WritePrintHTML renders rows as a standalone printable HTML page.
func WritePrintHTML(w io.Writer, title string, cols Columns, rows Rows, baseURL string) error {
	data := struct {
		Title  string
		Labels []string
		Rows   [][]printCell
	}{
		Title:  title,
		Labels: cols.Labels(),
		Rows:   make([][]printCell, 0, len(rows)),
	}
	for _, r := range rows {
		cc := make([]printCell, 0, len(cols))
		for _, col := range cols {
			c := Classify(r.Get(col.Accessor), col.Kind, baseURL)
			cc = append(cc, printCell{
				Kind: c.Kind.String(),
				Text: c.Display(),
				URL:  template.URL(c.URL),
			})
		}
		data.Rows = append(data.Rows, cc)
	}

	return printTmpl.Execute(w, data)
}
