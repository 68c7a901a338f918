package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/korylprince/chat-transport/api"
)

const createSampleTable = `CREATE TABLE IF NOT EXISTS reply_sample (
	id CHAR(36) NOT NULL PRIMARY KEY,
	time DATETIME(3) NOT NULL,
	source VARCHAR(16) NOT NULL,
	quality_mode BOOL NOT NULL,
	streamed BOOL NOT NULL,
	fallback_reason VARCHAR(255) NOT NULL,
	latency_ms BIGINT NOT NULL,
	stream_ms BIGINT NOT NULL,
	chars INT NOT NULL,
	tokens INT NOT NULL,
	chunks INT NOT NULL,
	INDEX (time)
);`

// SQLRecorder stores samples in a MySQL table
type SQLRecorder struct {
	db *sql.DB
}

// NewSQLRecorder returns an SQLRecorder on db. The DSN must set parseTime=true.
func NewSQLRecorder(db *sql.DB) *SQLRecorder {
	return &SQLRecorder{db: db}
}

// Migrate creates the sample table if it doesn't exist
func (r *SQLRecorder) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSampleTable); err != nil {
		return fmt.Errorf("could not create reply_sample table: %w", err)
	}
	return nil
}

// Record implements Recorder
func (r *SQLRecorder) Record(ctx context.Context, s Sample) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reply_sample(id, time, source, quality_mode, streamed, fallback_reason, latency_ms, stream_ms, chars, tokens, chunks) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
		s.ID.String(), s.Time, string(s.Source), s.QualityMode, s.Streamed, s.FallbackReason, s.LatencyMS, s.StreamMS, s.Chars, s.Tokens, s.Chunks,
	)
	if err != nil {
		return fmt.Errorf("could not insert sample %s: %w", s.ID, err)
	}
	return nil
}

// Summary aggregates the newest limit samples
func (r *SQLRecorder) Summary(ctx context.Context, limit int) (*Summary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, time, source, quality_mode, streamed, fallback_reason, latency_ms, stream_ms, chars, tokens, chunks FROM reply_sample ORDER BY time DESC LIMIT ?;",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var (
			s      Sample
			id     string
			source string
		)
		if err := rows.Scan(&id, &s.Time, &source, &s.QualityMode, &s.Streamed, &s.FallbackReason, &s.LatencyMS, &s.StreamMS, &s.Chars, &s.Tokens, &s.Chunks); err != nil {
			return nil, fmt.Errorf("could not scan sample: %w", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("could not parse sample id %q: %w", id, err)
		}
		s.Source = api.Source(source)
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read samples: %w", err)
	}

	// newest first from the query
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
	return Summarize(samples), nil
}
