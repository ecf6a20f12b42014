package report

import (
	"html/template"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

var htmlTemplate = template.Must(template.New("rankings").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Candidate Rankings: {{.JobName}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
tr.rejected td { color: #999; text-decoration: line-through; }
td.warn { color: #b00; font-weight: bold; }
td.notes { max-width: 30em; font-size: 0.9em; white-space: pre-line; }
</style>
</head>
<body>
<h1>Candidate Rankings: {{.JobName}}</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}} &middot; {{len .Rows}} candidates</p>
<table>
<tr><th>#</th><th>Candidate</th><th>Score</th><th>Recommendation</th><th>Priority</th><th>Strengths</th><th>Concerns</th><th>Notes</th><th>Flags</th></tr>
{{range .Rows}}<tr{{if .Rejected}} class="rejected"{{end}}>
<td>{{.Rank}}</td>
<td>{{.CandidateName}}</td>
<td>{{.OverallScore}}</td>
<td>{{.Recommendation}}</td>
<td>{{.InterviewPriority}}</td>
<td>{{range .Strengths}}{{.}}<br>{{end}}</td>
<td>{{range .Concerns}}{{.}}<br>{{end}}</td>
<td class="notes">{{.Notes}}</td>
<td{{if .DuplicateWarning}} class="warn"{{end}}>{{if .DuplicateWarning}}possible duplicate{{end}}{{if .Rejected}} rejected{{end}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type htmlData struct {
	JobName     string
	GeneratedAt time.Time
	Rows        []Row
}

// WriteHTML writes ranking rows as a standalone HTML page.
func WriteHTML(path, jobName string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()

	data := htmlData{JobName: jobName, GeneratedAt: time.Now(), Rows: rows}
	if err := htmlTemplate.Execute(f, data); err != nil {
		return eris.Wrapf(err, "report: render %s", path)
	}
	return f.Close()
}
