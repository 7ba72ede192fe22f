package service

import (
	"context"
	"fmt"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/repository"
)

type CourtSvc struct {
	repo *repository.CourtRepo
}

func NewCourtSvc(r *repository.CourtRepo) *CourtSvc {
	return &CourtSvc{repo: r}
}

func (s *CourtSvc) Create(ctx context.Context, in domain.Court) (*domain.Court, error) {
	if in.Name == "" || !in.Type.Valid() || in.PricePerHour <= 0 {
		return nil, fmt.Errorf("%w: name, valid type and positive rate required", domain.ErrValidation)
	}
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *CourtSvc) Get(ctx context.Context, id string) (*domain.Court, error) {
	return s.repo.ByID(ctx, id)
}

func (s *CourtSvc) List(ctx context.Context, page, size int, courtType domain.CourtType) ([]domain.Court, error) {
	if courtType != "" && !courtType.Valid() {
		return nil, fmt.Errorf("%w: unknown court type %q", domain.ErrValidation, courtType)
	}
	return s.repo.List(ctx, page, size, courtType)
}

func (s *CourtSvc) Update(ctx context.Context, in domain.Court) (*domain.Court, error) {
	if err := s.repo.Update(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *CourtSvc) Delete(ctx context.Context, id string) error { return s.repo.Delete(ctx, id) }
