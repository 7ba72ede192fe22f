package service

import (
	"context"
	"fmt"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/repository"
)

type MatchSvc struct {
	repo     *repository.MatchRepo
	bookings BookingStore
}

func NewMatchSvc(r *repository.MatchRepo, bookings BookingStore) *MatchSvc {
	return &MatchSvc{repo: r, bookings: bookings}
}

// Create opens a match roster on one of the caller's own bookings; the
// creator joins the home team.
func (s *MatchSvc) Create(ctx context.Context, userID, bookingID string, team domain.Team) (*domain.Match, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if team == "" {
		team = domain.TeamHome
	}
	m := &domain.Match{BookingID: bookingID, Status: domain.MatchPending}
	creator := domain.MatchPlayer{UserID: userID, Team: team}
	if err := s.repo.Create(ctx, m, creator); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MatchSvc) Get(ctx context.Context, id string) (*domain.Match, []domain.MatchPlayer, error) {
	m, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	players, err := s.repo.Players(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return m, players, nil
}

// AddPlayer requires the caller to already be on the roster.
func (s *MatchSvc) AddPlayer(ctx context.Context, callerID, matchID, userID string, team domain.Team) error {
	if err := s.requireMember(ctx, matchID, callerID); err != nil {
		return err
	}
	if team != domain.TeamHome && team != domain.TeamAway {
		return fmt.Errorf("%w: team must be home or away", domain.ErrValidation)
	}
	return s.repo.AddPlayer(ctx, &domain.MatchPlayer{MatchID: matchID, UserID: userID, Team: team})
}

func (s *MatchSvc) RemovePlayer(ctx context.Context, callerID, matchID, userID string) error {
	if err := s.requireMember(ctx, matchID, callerID); err != nil {
		return err
	}
	return s.repo.RemovePlayer(ctx, matchID, userID)
}

func (s *MatchSvc) UpdateStatus(ctx context.Context, callerID, matchID string, status domain.MatchStatus, result *domain.MatchResult) (*domain.Match, error) {
	if err := s.requireMember(ctx, matchID, callerID); err != nil {
		return nil, err
	}
	m, err := s.repo.ByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	switch status {
	case domain.MatchPending, domain.MatchConfirmed, domain.MatchCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown match status %q", domain.ErrValidation, status)
	}
	m.Status = status
	if result != nil {
		if *result != domain.MatchWin && *result != domain.MatchLoss {
			return nil, fmt.Errorf("%w: result must be win or loss", domain.ErrValidation)
		}
		m.Result = result
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MatchSvc) ListForUser(ctx context.Context, userID string, status domain.MatchStatus) ([]domain.Match, error) {
	return s.repo.ListForUser(ctx, userID, status)
}

func (s *MatchSvc) requireMember(ctx context.Context, matchID, userID string) error {
	players, err := s.repo.Players(ctx, matchID)
	if err != nil {
		return err
	}
	for _, p := range players {
		if p.UserID == userID {
			return nil
		}
	}
	return domain.ErrForbidden
}
