package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sumpad/internal/domain"
)

func (d *Database) SaveSummary(ctx context.Context, rec domain.SummaryRecord) error {
	summary := strings.TrimSpace(rec.Summary)
	if summary == "" {
		return errors.New("summary is empty")
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `insert into summaries (target_words, source_chars, summary, created_at)
	values (?, ?, ?, ?)`

	_, err := d.db.ExecContext(ctx, query,
		rec.TargetWords,
		rec.SourceChars,
		summary,
		createdAt.UTC().Format(time.RFC3339),
	)

	return err
}

func (d *Database) RecentSummaries(
	ctx context.Context,
	limit int64,
) ([]domain.SummaryRecord, error) {
	query := `select id, target_words, source_chars, summary, created_at
	from summaries
	order by id desc
	limit ?`

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			d.log.ErrorContext(ctx, "Failed to close rows",
				"error", err,
				"limit", limit,
				"operation", "RecentSummaries")
		}
	}()

	var records []domain.SummaryRecord
	for rows.Next() {
		var rec domain.SummaryRecord
		var createdAt string
		if err = rows.Scan(
			&rec.ID,
			&rec.TargetWords,
			&rec.SourceChars,
			&rec.Summary,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

func (d *Database) DeleteSummariesOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	query := "delete from summaries where created_at < ?"

	res, err := d.db.ExecContext(ctx, query, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}

	return deleted, nil
}
