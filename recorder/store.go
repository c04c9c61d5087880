package recorder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sink receives every recorded test
type Sink interface {
	Write(ctx context.Context, tr TestResult) error
}

// Store persists test results through gorm
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewStore(db *gorm.DB, log zerolog.Logger) (*Store, error) {
	if err := db.AutoMigrate(&TestResult{}); err != nil {
		return nil, fmt.Errorf("migrating test results: %w", err)
	}
	return &Store{db: db, log: log.With().Str("component", "history").Logger()}, nil
}

// Write inserts or replaces a test, so a later note overwrites the stored row
func (s *Store) Write(ctx context.Context, tr TestResult) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&tr).Error
	if err != nil {
		return fmt.Errorf("saving test %d: %w", tr.ID, err)
	}
	s.log.Debug().Int("id", tr.ID).Str("session", tr.Session).Msg("test saved")
	return nil
}

// List returns the newest limit tests of a session, oldest first. An empty session
// lists every session; a non-positive limit means no limit.
func (s *Store) List(ctx context.Context, session string, limit int) (tests []TestResult, err error) {
	q := s.db.WithContext(ctx).Order("recorded_at desc").Order("id desc")
	if session != "" {
		q = q.Where("session = ?", session)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err = q.Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("listing tests: %w", err)
	}
	for i, j := 0, len(tests)-1; i < j; i, j = i+1, j-1 {
		tests[i], tests[j] = tests[j], tests[i]
	}
	return
}

// Sessions lists the stored session ids
func (s *Store) Sessions(ctx context.Context) (sessions []string, err error) {
	err = s.db.WithContext(ctx).Model(&TestResult{}).Distinct().Order("session").Pluck("session", &sessions).Error
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return
}

// Delete removes one session, or everything when session is empty
func (s *Store) Delete(ctx context.Context, session string) (n int64, err error) {
	q := s.db.WithContext(ctx)
	if session != "" {
		q = q.Where("session = ?", session)
	} else {
		q = q.Where("1 = 1")
	}
	res := q.Delete(&TestResult{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting tests: %w", res.Error)
	}
	return res.RowsAffected, nil
}
