package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TotalsBatchTimeout = 2 * time.Second
	TotalsPollTimeout  = 1 * time.Second
)

// TotalsQueue publishes scored aggregates onto the Redis write-back queue.
type TotalsQueue struct {
	rdb *redis.Client
}

// NewTotalsQueue creates a TotalsQueue.
func NewTotalsQueue(rdb *redis.Client) *TotalsQueue {
	return &TotalsQueue{rdb: rdb}
}

// PublishTotals appends t to the queue consumed by TotalsWorker.
func (q *TotalsQueue) PublishTotals(ctx context.Context, t model.AttemptTotals) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal totals: %w", err)
	}
	return q.rdb.RPush(ctx, config.WorkerKey.PersistTotalsQueue, raw).Err()
}

// TotalsWorker drains the totals queue into attempt_sets in batches.
type TotalsWorker struct {
	pool      *pgxpool.Pool
	rdb       *redis.Client
	batchSize int
	log       zerolog.Logger
}

// NewTotalsWorker creates a TotalsWorker flushing up to batchSize updates at once.
func NewTotalsWorker(pool *pgxpool.Pool, rdb *redis.Client, batchSize int, log zerolog.Logger) *TotalsWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &TotalsWorker{
		pool:      pool,
		rdb:       rdb,
		batchSize: batchSize,
		log:       log.With().Str("component", "totals_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *TotalsWorker) Start(ctx context.Context) {
	w.log.Info().Int("batch_size", w.batchSize).Msg("TotalsWorker started")

	batch := make([]model.AttemptTotals, 0, w.batchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= w.batchSize || time.Since(lastFlush) >= TotalsBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, TotalsPollTimeout, config.WorkerKey.PersistTotalsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var t model.AttemptTotals
			if err := json.Unmarshal([]byte(item[1]), &t); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, t)
		}
	}
}

// ----------------------------------------------------------------
// Batch update wrapper
// ----------------------------------------------------------------

func (w *TotalsWorker) flushSafe(ctx context.Context, batch []model.AttemptTotals) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkUpdateTotals(ctx, batch); err != nil {
		w.log.Warn().Err(err).Int("size", len(batch)).Msg("bulk totals update failed, using fallback")

		for _, t := range batch {
			if err := w.persistSingle(ctx, t); err != nil {
				w.log.Error().Err(err).Int("attempt_set_id", t.AttemptSetID).Msg("persistSingle failed, requeueing")
				raw, _ := json.Marshal(t)
				w.rdb.RPush(ctx, config.WorkerKey.PersistTotalsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("size", len(batch)).Msg("Totals flushed")
}

// ----------------------------------------------------------------
// BULK PostgreSQL UPDATE using UNNEST + alias
// ----------------------------------------------------------------

func (w *TotalsWorker) bulkUpdateTotals(ctx context.Context, batch []model.AttemptTotals) error {
	latest := dedupeTotals(batch)
	n := len(latest)

	ids := make([]int, 0, n)
	amounts := make([]int, 0, n)
	scores := make([]int, 0, n)
	passed := make([]bool, 0, n)
	for _, t := range latest {
		ids = append(ids, t.AttemptSetID)
		amounts = append(amounts, t.TotalAmount)
		scores = append(scores, t.TotalScore)
		passed = append(passed, t.Passed)
	}

	query := `
		UPDATE attempt_sets AS s
		SET total_amount = t.total_amount,
		    total_score = t.total_score,
		    passed = t.passed
		FROM (
			SELECT
				u.id,
				u.total_amount,
				u.total_score,
				u.passed
			FROM UNNEST(
				$1::int[],
				$2::int[],
				$3::int[],
				$4::bool[]
			) AS u (id, total_amount, total_score, passed)
		) AS t
		WHERE s.id = t.id
	`

	_, err := w.pool.Exec(ctx, query, ids, amounts, scores, passed)
	return err
}

// dedupeTotals keeps the last update per attempt set; UPDATE ... FROM applies
// only one source row per target.
func dedupeTotals(batch []model.AttemptTotals) []model.AttemptTotals {
	pos := make(map[int]int, len(batch))
	out := make([]model.AttemptTotals, 0, len(batch))
	for _, t := range batch {
		if i, ok := pos[t.AttemptSetID]; ok {
			out[i] = t
			continue
		}
		pos[t.AttemptSetID] = len(out)
		out = append(out, t)
	}
	return out
}

// ----------------------------------------------------------------
// FALLBACK single update
// ----------------------------------------------------------------

func (w *TotalsWorker) persistSingle(ctx context.Context, t model.AttemptTotals) error {
	_, err := w.pool.Exec(ctx,
		`UPDATE attempt_sets
		 SET total_amount = $1, total_score = $2, passed = $3
		 WHERE id = $4`,
		t.TotalAmount, t.TotalScore, t.Passed, t.AttemptSetID,
	)
	return err
}
