package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const llmRequestsTable = "llm_requests"

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(llmRequestsTable).
		Columns("sequence", "timestamp", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "cost_usd", "success",
			"error_message", "request_body", "response_body").
		Values(seqNum, time.Now().UTC().Format(time.RFC3339Nano), data.Provider,
			data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.CostUSD, data.Success, data.ErrorMessage, data.RequestBody,
			data.ResponseBody).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) CountLLMRequests(ctx context.Context) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).From(b.Table(llmRequestsTable)).Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count LLM requests: %w", err)
	}
	return n, nil
}
