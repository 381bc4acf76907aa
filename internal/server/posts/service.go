package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a post. The title must contain something other than
// whitespace; a nil content is stored as NULL.
func (s *Service) Create(ctx context.Context, title string, content *string) (*Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, common.ErrTitleRequired
	}

	post, err := s.repo.Create(ctx, &Post{Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("%w: error creating post: %w", common.ErrorInternal, err)
	}

	return post, nil
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: error listing posts: %w", common.ErrorInternal, err)
	}
	return posts, nil
}
