package database

import (
	"context"
	"fmt"
	"time"
)

type ExamDate struct {
	Kind     string    `db:"kind"`
	Year     int       `db:"year"`
	Month    int       `db:"month"`
	StartsAt time.Time `db:"starts_at"`
	Note     string    `db:"note"`
}

// GetExamDate returns sql.ErrNoRows if no date was announced for the exam.
func (d *Database) GetExamDate(ctx context.Context, kind string, year int, month int) (*ExamDate, error) {
	var date ExamDate
	if err := d.db.GetContext(ctx, &date, `
		SELECT kind, year, month, starts_at, note
		FROM exam_dates
		WHERE kind = $1 AND year = $2 AND month = $3
	`, kind, year, month); err != nil {
		return nil, err
	}

	return &date, nil
}

func (d *Database) ListExamDates(ctx context.Context, year int) ([]ExamDate, error) {
	var dates []ExamDate
	if err := d.db.SelectContext(ctx, &dates, `
		SELECT kind, year, month, starts_at, note
		FROM exam_dates
		WHERE year = $1
		ORDER BY starts_at
	`, year); err != nil {
		return nil, fmt.Errorf("failed to list exam dates: %w", err)
	}

	return dates, nil
}

func (d *Database) UpsertExamDate(ctx context.Context, date ExamDate) error {
	query := `
		INSERT INTO exam_dates (kind, year, month, starts_at, note)
		VALUES (:kind, :year, :month, :starts_at, :note)
		ON CONFLICT (kind, year, month) DO UPDATE
		SET starts_at = EXCLUDED.starts_at, note = EXCLUDED.note
	`
	if _, err := d.db.NamedExecContext(ctx, query, date); err != nil {
		return fmt.Errorf("failed to upsert exam date: %w", err)
	}

	return nil
}
