package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

// CatalogService manages achievement definitions. Every write is validated
// before it reaches storage.
type CatalogService struct {
	repository AchievementRepository
	unlocks    UnlockRepository
	tx         Transactor
	logger     *zap.Logger
}

func NewCatalogService(repository AchievementRepository, unlocks UnlockRepository, tx Transactor, logger *zap.Logger) *CatalogService {
	return &CatalogService{repository: repository, unlocks: unlocks, tx: tx, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, a *entities.Achievement) (*entities.Achievement, error) {
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repository.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("achievement created", zap.Int64("id", a.ID), zap.String("code", a.Code))
	return a, nil
}

// Update replaces the definition with id. Existing unlocks are kept even if
// the new conditions would no longer hold.
func (s *CatalogService) Update(ctx context.Context, id int64, a *entities.Achievement) (*entities.Achievement, error) {
	a.ID = id
	a.Normalize()
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("achievement updated", zap.Int64("id", a.ID), zap.String("code", a.Code))
	return a, nil
}

// Delete removes the definition and all of its unlocks in one transaction.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	var removed int64

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repository.Get(ctx, id); err != nil {
			return err
		}

		n, err := s.unlocks.DeleteByAchievement(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return s.repository.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("achievement deleted", zap.Int64("id", id), zap.Int64("unlocks_removed", removed))
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*entities.Achievement, error) {
	return s.repository.Get(ctx, id)
}

// List returns the catalog in display order, without hidden entries unless
// includeHidden is set.
func (s *CatalogService) List(ctx context.Context, includeHidden bool) ([]*entities.Achievement, error) {
	catalog, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	entities.SortCatalog(catalog)

	if includeHidden {
		return catalog, nil
	}

	visible := make([]*entities.Achievement, 0, len(catalog))
	for _, a := range catalog {
		if !a.Hidden {
			visible = append(visible, a)
		}
	}
	return visible, nil
}
