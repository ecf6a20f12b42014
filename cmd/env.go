package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/eval"
	"github.com/sells-group/screening-cli/internal/feedback"
	"github.com/sells-group/screening-cli/internal/ocr"
	"github.com/sells-group/screening-cli/internal/pipeline"
	"github.com/sells-group/screening-cli/internal/records"
	"github.com/sells-group/screening-cli/internal/store"
	anthropicpkg "github.com/sells-group/screening-cli/pkg/anthropic"
)

// screeningEnv bundles the wired-up subsystems the commands share.
type screeningEnv struct {
	Records  *records.Store
	Ledger   store.Store
	Pipeline *pipeline.Pipeline
	Feedback *feedback.Manager
}

// initEnv wires the full pipeline from config.
func initEnv(ctx context.Context) (*screeningEnv, error) {
	ledger, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := ledger.Migrate(ctx); err != nil {
		ledger.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	recs := records.NewStore(cfg.Data)
	client := anthropicpkg.NewClient(cfg.Anthropic.Key, cfg.Anthropic.RequestsPerMin)
	evaluator := eval.NewEvaluator(client, cfg.Anthropic)
	reader := ocr.NewReader(cfg.OCR)

	return &screeningEnv{
		Records:  recs,
		Ledger:   ledger,
		Pipeline: pipeline.New(cfg, recs, reader, evaluator, ledger),
		Feedback: feedback.NewManager(recs, evaluator, cfg.Feedback.InsightCadence),
	}, nil
}

// initRecords wires only the file-backed record store, for read-only commands
// that never touch the API or the ledger.
func initRecords() *records.Store {
	return records.NewStore(cfg.Data)
}

func (e *screeningEnv) Close() {
	e.Ledger.Close()
}
