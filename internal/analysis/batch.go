package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-analyzer/internal/ranking"
	"github.com/jonathan/ats-analyzer/internal/types"
)

// DefaultBatchConcurrency bounds the number of résumés analysed at once.
const DefaultBatchConcurrency = 4

// AnalyzeBatch analyses each résumé against the same job description and returns
// them ranked by overall score. A non-positive limit uses DefaultBatchConcurrency.
// It returns the context error if ctx is cancelled before every résumé is scored.
func AnalyzeBatch(ctx context.Context, jobText string, resumes []types.Document, limit int) ([]types.RankedResult, error) {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	// Each goroutine owns one index, so no locking is needed.
	entries := make([]types.BatchEntry, len(resumes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, doc := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("batch cancelled before %q: %w", doc.Name, err)
			}
			entries[i] = types.BatchEntry{
				Name:   doc.Name,
				Result: Analyze(doc.Text, jobText),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ranking.Rank(entries), nil
}
