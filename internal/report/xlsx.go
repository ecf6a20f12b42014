package report

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX writes ranking rows as a spreadsheet with one sheet per job.
func WriteXLSX(path, jobName string, rows []Row) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName(jobName))
	if err != nil {
		return eris.Wrapf(err, "report: add sheet for %s", jobName)
	}

	header := sheet.AddRow()
	for _, h := range csvHeader {
		header.AddCell().Value = h
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.Rank)
		row.AddCell().Value = r.CandidateName
		row.AddCell().SetInt(r.OverallScore)
		row.AddCell().Value = string(r.Recommendation)
		row.AddCell().Value = string(r.InterviewPriority)
		row.AddCell().Value = strings.Join(r.Strengths, "; ")
		row.AddCell().Value = strings.Join(r.Concerns, "; ")
		row.AddCell().Value = strings.Join(r.RulesApplied, "; ")
		row.AddCell().Value = r.Notes
		row.AddCell().SetBool(r.DuplicateWarning)
		row.AddCell().SetBool(r.Rejected)
		row.AddCell().Value = r.EvaluatedAt.UTC().Format("2006-01-02 15:04:05")
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "report: save %s", path)
	}
	return nil
}

// sheetName truncates a job name to Excel's 31-character sheet name limit.
func sheetName(jobName string) string {
	if len(jobName) > 31 {
		return jobName[:31]
	}
	return jobName
}
