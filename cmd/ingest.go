package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
	"github.com/pokeca-rec/pokeca-cli/internal/resolver"
	"github.com/pokeca-rec/pokeca-cli/internal/store"
)

var ingestConcurrency int

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json>...",
	Short: "Ingest scraped card detail records into the card table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		concurrency := ingestConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Ingest.Concurrency
		}
		return ingestFiles(cmd.Context(), st, args, concurrency)
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 0, "parallel file readers (default from config)")
	rootCmd.AddCommand(ingestCmd)
}

// ingestFiles decodes card detail files concurrently and resolves each
// record. Resolve is a check-then-act sequence on the card table, so all
// calls are serialized behind one mutex; only the file reads run in
// parallel. A bad file or record is logged and skipped, never fatal.
func ingestFiles(ctx context.Context, st store.Store, paths []string, concurrency int) error {
	var mu sync.Mutex
	var resolved, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", path))

			details, err := readDetails(path)
			if err != nil {
				failed.Add(1)
				log.Error("read card details failed", zap.Error(err))
				return nil // don't abort the batch on one bad file
			}

			for _, d := range details {
				mu.Lock()
				_, err := resolver.Resolve(gctx, st, d)
				mu.Unlock()
				if err != nil {
					failed.Add(1)
					log.Error("resolve failed",
						zap.String("card_name", d.CardName),
						zap.Error(err),
					)
					continue
				}
				resolved.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "ingest")
	}

	zap.L().Info("ingest complete",
		zap.Int64("resolved", resolved.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

// readDetails loads one file holding either a single card detail object or
// an array of them.
func readDetails(path string) ([]model.CardDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read %s", path)
	}

	var details []model.CardDetail
	if err := json.Unmarshal(data, &details); err == nil {
		return details, nil
	}

	var single model.CardDetail
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, eris.Wrapf(err, "ingest: decode %s", path)
	}
	return []model.CardDetail{single}, nil
}
