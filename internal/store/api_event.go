package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *eventRepo) AppendAPIRequest(ctx context.Context, data APIRequestEventData) error {
	query, args := r.b.Insert("api_request_events").
		Columns("timestamp", "request_id", "method", "path", "status", "latency_ms", "success", "error_message").
		Values(time.Now().UnixMilli(), data.RequestID, data.Method, data.Path, data.Status, data.LatencyMs, data.Success, data.ErrorMessage).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save api request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestRecord, error) {
	sel := r.b.Select("id", "timestamp", "request_id", "method", "path", "status", "latency_ms", "success", "error_message").
		From(r.b.Table("api_request_events"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("id", opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	sel = sel.OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query api request events: %w", err)
	}
	defer rows.Close()

	var records []APIRequestRecord
	for rows.Next() {
		var rec APIRequestRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &ts, &rec.RequestID, &rec.Method, &rec.Path,
			&rec.Status, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan api request event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}
