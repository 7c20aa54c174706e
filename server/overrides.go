package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/topi314/csat-counter/server/countdown"
	"github.com/topi314/csat-counter/server/database"
)

var _ countdown.OverrideStore = (*examDateStore)(nil)

// examDateStore serves announced exam dates from the database.
type examDateStore struct {
	db *database.Database
}

func (s *examDateStore) ExamDate(ctx context.Context, kind countdown.Kind, year int, month int) (time.Time, bool, error) {
	date, err := s.db.GetExamDate(ctx, string(kind), year, month)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get exam date: %w", err)
	}

	return date.StartsAt, true, nil
}
