package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/database"
	"github.com/wonny/advisor/pkg/logger"
)

// Pick kinds persisted by the scheduler jobs
const (
	PickKindWeek  = "week"
	PickKindMonth = "month"
)

// Repository persists ranked batches and best picks so the API can
// serve history without re-running analyses
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a recommendation repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// EnsureSchema creates the persistence tables when they do not exist
// yet. Called once at startup.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recommendation_batches (
			id           BIGSERIAL PRIMARY KEY,
			horizon      TEXT        NOT NULL,
			attempted    INT         NOT NULL,
			succeeded    INT         NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recommendations (
			id            BIGSERIAL PRIMARY KEY,
			batch_id      BIGINT REFERENCES recommendation_batches(id),
			symbol        TEXT             NOT NULL,
			horizon       TEXT             NOT NULL,
			current_price DOUBLE PRECISION NOT NULL,
			confidence    DOUBLE PRECISION NOT NULL,
			action        TEXT             NOT NULL,
			target_price  DOUBLE PRECISION NOT NULL,
			stop_loss     DOUBLE PRECISION NOT NULL,
			entry_point   DOUBLE PRECISION NOT NULL,
			scores        JSONB            NOT NULL,
			reasons       TEXT[],
			risks         TEXT[],
			generated_at  TIMESTAMPTZ      NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recommendations_symbol
			ON recommendations (symbol, generated_at DESC);

		CREATE TABLE IF NOT EXISTS best_picks (
			id           BIGSERIAL PRIMARY KEY,
			kind         TEXT             NOT NULL,
			symbol       TEXT             NOT NULL,
			confidence   DOUBLE PRECISION NOT NULL,
			payload      JSONB            NOT NULL,
			generated_at TIMESTAMPTZ      NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_best_picks_kind
			ON best_picks (kind, generated_at DESC)`,
	)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveBatch stores a ranked batch and its recommendation rows in one
// transaction
func (r *Repository) SaveBatch(ctx context.Context, batch *contracts.BatchResult) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch save: %w", err)
	}
	defer tx.Rollback(ctx)

	var batchID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO recommendation_batches (horizon, attempted, succeeded, generated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		batch.Horizon, batch.Attempted, batch.Succeeded, batch.GeneratedAt,
	).Scan(&batchID)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, rec := range batch.Recommendations {
		scores, err := json.Marshal(rec.Scores)
		if err != nil {
			return fmt.Errorf("marshal scores for %s: %w", rec.Symbol, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO recommendations
				(batch_id, symbol, horizon, current_price, confidence, action,
				 target_price, stop_loss, entry_point, scores, reasons, risks, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			batchID, rec.Symbol, rec.TimeHorizon, rec.CurrentPrice, rec.Confidence,
			rec.Action, rec.TargetPrice, rec.StopLoss, rec.EntryPoint,
			scores, rec.Reasons, rec.Risks, rec.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recommendation %s: %w", rec.Symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch save: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"batch_id": batchID,
		"horizon":  batch.Horizon,
		"rows":     len(batch.Recommendations),
	}).Info("Saved recommendation batch")

	return nil
}

// SavePick stores one best pick as a JSON document keyed by kind
func (r *Repository) SavePick(ctx context.Context, kind string, pick *contracts.EnrichedRecommendation) error {
	payload, err := json.Marshal(pick)
	if err != nil {
		return fmt.Errorf("marshal pick: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO best_picks (kind, symbol, confidence, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		kind, pick.Symbol, pick.Confidence, payload, pick.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"kind":   kind,
		"symbol": pick.Symbol,
	}).Info("Saved best pick")

	return nil
}

// LatestPick returns the most recent stored pick of a kind, or nil
// when none exists yet
func (r *Repository) LatestPick(ctx context.Context, kind string) (*contracts.EnrichedRecommendation, error) {
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT payload FROM best_picks
		WHERE kind = $1
		ORDER BY generated_at DESC
		LIMIT 1`,
		kind,
	).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest pick: %w", err)
	}

	var pick contracts.EnrichedRecommendation
	if err := json.Unmarshal(payload, &pick); err != nil {
		return nil, fmt.Errorf("unmarshal pick: %w", err)
	}
	return &pick, nil
}

// RecentRecommendations returns the stored history for one symbol,
// newest first
func (r *Repository) RecentRecommendations(ctx context.Context, symbol string, limit int) ([]contracts.RecommendationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT symbol, horizon, current_price, confidence, action,
		       target_price, stop_loss, entry_point, scores, reasons, risks, generated_at
		FROM recommendations
		WHERE symbol = $1
		ORDER BY generated_at DESC
		LIMIT $2`,
		symbol, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	var records []contracts.RecommendationRecord
	for rows.Next() {
		var rec contracts.RecommendationRecord
		var scores []byte
		err := rows.Scan(
			&rec.Symbol, &rec.TimeHorizon, &rec.CurrentPrice, &rec.Confidence, &rec.Action,
			&rec.TargetPrice, &rec.StopLoss, &rec.EntryPoint, &scores, &rec.Reasons, &rec.Risks, &rec.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		if err := json.Unmarshal(scores, &rec.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
