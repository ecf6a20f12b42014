package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/records"
)

// Generator writes ranking reports for a job in every output format.
type Generator struct {
	store *records.Store
	data  config.DataConfig
}

// NewGenerator creates a report generator.
func NewGenerator(store *records.Store, data config.DataConfig) *Generator {
	return &Generator{store: store, data: data}
}

// Artifacts lists the files one Generate call produced.
type Artifacts struct {
	CSV  string
	HTML string
	XLSX string
	Rows int
}

// Generate builds the rankings for a job and writes the CSV, HTML, and XLSX
// artifacts concurrently, sharing one timestamp so the three files pair up.
func (g *Generator) Generate(jobName string) (Artifacts, error) {
	rows, err := BuildRankings(g.store, jobName)
	if err != nil {
		return Artifacts{}, err
	}

	outDir := g.data.OutputDir(jobName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Artifacts{}, eris.Wrapf(err, "report: create %s", outDir)
	}

	stamp := time.Now().Format("20060102_150405")
	base := filepath.Join(outDir, fmt.Sprintf("candidate_rankings_%s", stamp))
	art := Artifacts{
		CSV:  base + ".csv",
		HTML: base + ".html",
		XLSX: base + ".xlsx",
		Rows: len(rows),
	}

	var eg errgroup.Group
	eg.Go(func() error { return WriteCSV(art.CSV, rows) })
	eg.Go(func() error { return WriteHTML(art.HTML, jobName, rows) })
	eg.Go(func() error { return WriteXLSX(art.XLSX, jobName, rows) })
	if err := eg.Wait(); err != nil {
		return Artifacts{}, err
	}

	zap.L().Info("reports generated",
		zap.String("job", jobName),
		zap.Int("candidates", len(rows)),
		zap.String("dir", outDir),
	)
	return art, nil
}
