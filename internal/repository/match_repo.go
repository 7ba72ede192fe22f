package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/padel-booking/internal/domain"
)

type MatchRepo struct{ db *gorm.DB }

func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

func (r *MatchRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Match{}, &domain.MatchPlayer{})
}

func (r *MatchRepo) Create(ctx context.Context, m *domain.Match, creator domain.MatchPlayer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		creator.MatchID = m.ID
		if creator.ID == "" {
			creator.ID = uuid.NewString()
		}
		return tx.Create(&creator).Error
	})
}

func (r *MatchRepo) ByID(ctx context.Context, id string) (*domain.Match, error) {
	var m domain.Match
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepo) Update(ctx context.Context, m *domain.Match) error {
	return r.db.WithContext(ctx).Model(&domain.Match{}).Where("id = ?", m.ID).Updates(m).Error
}

func (r *MatchRepo) Players(ctx context.Context, matchID string) ([]domain.MatchPlayer, error) {
	var out []domain.MatchPlayer
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// AddPlayer inserts inside a txn so the roster cap holds under concurrent joins.
func (r *MatchRepo) AddPlayer(ctx context.Context, p *domain.MatchPlayer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.MatchPlayer{}).
			Where("match_id = ?", p.MatchID).
			Count(&n).Error; err != nil {
			return err
		}
		if n >= domain.MaxMatchPlayers {
			return domain.ErrValidation
		}
		var dup int64
		if err := tx.Model(&domain.MatchPlayer{}).
			Where("match_id = ? AND user_id = ?", p.MatchID, p.UserID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return domain.ErrValidation
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		return tx.Create(p).Error
	})
}

func (r *MatchRepo) RemovePlayer(ctx context.Context, matchID, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.MatchPlayer{}, "match_id = ? AND user_id = ?", matchID, userID).Error
}

// ListForUser returns matches the user plays in, newest first.
func (r *MatchRepo) ListForUser(ctx context.Context, userID string, status domain.MatchStatus) ([]domain.Match, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Match{}).
		Joins("JOIN match_players ON match_players.match_id = matches.id").
		Where("match_players.user_id = ?", userID)
	if status != "" {
		qb = qb.Where("matches.status = ?", status)
	}
	var out []domain.Match
	err := qb.Order("matches.created_at DESC").Find(&out).Error
	return out, err
}
