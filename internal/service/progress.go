package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

// ProgressOptions tunes lesson completion.
type ProgressOptions struct {
	Location            *time.Location // calendar used for streaks, UTC when nil
	WordsPerVocabLesson int
}

type ProgressService struct {
	repository ProgressRepository
	lessons    LessonCatalog
	opts       ProgressOptions
	now        func() time.Time
	logger     *zap.Logger
}

func NewProgressService(repository ProgressRepository, lessons LessonCatalog, opts ProgressOptions, logger *zap.Logger) *ProgressService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &ProgressService{
		repository: repository,
		lessons:    lessons,
		opts:       opts,
		now:        time.Now,
		logger:     logger,
	}
}

// GetOrCreate returns the progress record of userID, creating an empty one
// on first access.
func (s *ProgressService) GetOrCreate(ctx context.Context, userID int64) (*entities.Progress, error) {
	p, err := s.repository.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, entities.ErrProgressNotFound) {
		return nil, err
	}

	if err := s.repository.Create(ctx, entities.NewProgress(userID, s.now())); err != nil {
		return nil, err
	}
	s.logger.Info("progress record created", zap.Int64("user_id", userID))

	// Read back: a concurrent first access may have won the insert.
	return s.repository.Get(ctx, userID)
}

// CompleteLesson records a finished lesson and returns the updated record.
// It does not unlock achievements; callers run the reconciliation sweep.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID int64, lc entities.LessonCompletion) (*entities.Progress, error) {
	if err := lc.Validate(); err != nil {
		return nil, err
	}

	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.lessons.CountByCategory(ctx, lc.Category)
	if err != nil {
		return nil, fmt.Errorf("count lessons in %s: %w", lc.Category, err)
	}

	p.CompleteLesson(lc, total, s.opts.WordsPerVocabLesson, s.now(), s.opts.Location)

	if err := s.repository.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Debug("lesson completed",
		zap.Int64("user_id", userID),
		zap.String("lesson_id", lc.LessonID),
		zap.String("category", string(lc.Category)),
		zap.Int("streak", p.Streak),
		zap.Int("lessons_today", p.LessonsToday),
	)

	return p, nil
}

// SetCurrentLesson stores the lesson the user is currently working on.
func (s *ProgressService) SetCurrentLesson(ctx context.Context, userID int64, cl entities.CurrentLesson) (*entities.Progress, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.SetCurrentLesson(cl, s.now()); err != nil {
		return nil, err
	}

	if err := s.repository.Save(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
