package breaking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var errMissingID = errors.New("breaking: _id is required")

type CreateItemDTO struct {
	Title     string     `json:"title" binding:"required"`
	Link      string     `json:"link"`
	Active    *bool      `json:"active"`
	Priority  int        `json:"priority"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type UpdateItemDTO struct {
	ID        string     `json:"_id"`
	Title     *string    `json:"title"`
	Link      *string    `json:"link"`
	Active    *bool      `json:"active"`
	Priority  *int       `json:"priority"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

// List returns ticker items ordered by priority ascending, ties broken
// newest-first. includeAll skips the visibility filter for the admin view.
func (s *Service) List(ctx context.Context, includeAll bool) ([]models.BreakingNewsItem, error) {
	var items []models.BreakingNewsItem
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeBreakingNews},
		&items)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.BreakingNewsItem{}, nil
		}
		return nil, err
	}

	now := time.Now()
	out := make([]models.BreakingNewsItem, 0, len(items))
	for _, it := range items {
		if !includeAll && !it.Visible(now) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateItemDTO) (*models.BreakingNewsItem, error) {
	doc := models.BreakingNewsItem{
		Base:      models.Base{Type: models.TypeBreakingNews},
		Title:     dto.Title,
		Link:      dto.Link,
		Active:    dto.Active,
		Priority:  dto.Priority,
		ExpiresAt: dto.ExpiresAt,
	}
	var created models.BreakingNewsItem
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateItemDTO) (*models.BreakingNewsItem, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.Link != nil {
		fields["link"] = *dto.Link
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}
	if dto.Priority != nil {
		fields["priority"] = *dto.Priority
	}
	if dto.ExpiresAt != nil {
		fields["expiresAt"] = dto.ExpiresAt
	}

	var updated models.BreakingNewsItem
	if err := s.st.Patch(dto.ID).Set(fields).CommitInto(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return s.st.Delete(ctx, id)
}
