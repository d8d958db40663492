package service

import (
	"context"
	"errors"
	"sort"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"
)

// EducationService serves the global article library. Reading an
// article's detail bumps its read counter.
type EducationService struct {
	store repository.Store
}

func NewEducationService(store repository.Store) *EducationService {
	return &EducationService{store: store}
}

func (s *EducationService) Articles(ctx context.Context, category string) ([]models.Article, error) {
	return s.store.Articles().All(ctx, category)
}

// Article returns one article and increments its read count.
func (s *EducationService) Article(ctx context.Context, id string) (*models.Article, error) {
	a, err := s.store.Articles().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.ReadCount++
	if err := s.store.Articles().Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Categories returns the distinct article categories sorted.
func (s *EducationService) Categories(ctx context.Context) ([]string, error) {
	articles, err := s.store.Articles().All(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, a := range articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}
