package storage

import (
	"errors"
	"time"

	"github.com/ericogr/energy-duel/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateSession(s *game.Session) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetSessionByCode(code string) (*game.Session, error) {
	var s game.Session
	err := r.db.Where("code = ?", code).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) UpdateSession(s *game.Session) error {
	return r.db.Save(s).Error
}

// DeleteSession removes the row for good; quitting discards all state.
func (r *sqliteRepository) DeleteSession(code string) error {
	res := r.db.Unscoped().Where("code = ?", code).Delete(&game.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepository) PurgeIdleSessions(cutoff time.Time) (int64, error) {
	res := r.db.Unscoped().Where("updated_at <= ?", cutoff).Delete(&game.Session{})
	return res.RowsAffected, res.Error
}
