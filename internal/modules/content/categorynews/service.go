package categorynews

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var (
	errMissingID   = errors.New("categorynews: _id is required")
	errInvalidKind = errors.New("categorynews: unknown kind")
)

var validKinds = map[string]struct{}{
	models.CategoryNewsNational:      {},
	models.CategoryNewsEntertainment: {},
	models.CategoryNewsHealth:        {},
	models.CategoryNewsSports:        {},
	models.CategoryNewsLocal:         {},
}

type CreateItemDTO struct {
	Kind        string           `json:"kind" binding:"required"`
	Title       string           `json:"title" binding:"required"`
	Image       *models.ImageRef `json:"image"`
	Description string           `json:"description"`
	Author      string           `json:"author"`
	PublishedAt *time.Time       `json:"publishedAt"`
	Order       int              `json:"order"`
	Active      *bool            `json:"active"`
}

type UpdateItemDTO struct {
	ID          string           `json:"_id"`
	Kind        *string          `json:"kind"`
	Title       *string          `json:"title"`
	Image       *models.ImageRef `json:"image"`
	Description *string          `json:"description"`
	Author      *string          `json:"author"`
	PublishedAt *time.Time       `json:"publishedAt"`
	Order       *int             `json:"order"`
	Active      *bool            `json:"active"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

// ListByKind returns one widget strip, ordered by the editorial order
// field, ties newest-first.
func (s *Service) ListByKind(ctx context.Context, kind string, includeAll bool) ([]models.CategoryNews, error) {
	if _, ok := validKinds[kind]; !ok {
		return nil, errInvalidKind
	}
	var items []models.CategoryNews
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeCategoryNews},
		&items)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.CategoryNews{}, nil
		}
		return nil, err
	}

	out := make([]models.CategoryNews, 0, len(items))
	for _, it := range items {
		if it.Kind != kind {
			continue
		}
		if !includeAll && !models.IsActive(it.Active) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateItemDTO) (*models.CategoryNews, error) {
	if _, ok := validKinds[dto.Kind]; !ok {
		return nil, errInvalidKind
	}
	doc := models.CategoryNews{
		Base:        models.Base{Type: models.TypeCategoryNews},
		Kind:        dto.Kind,
		Title:       dto.Title,
		Image:       dto.Image,
		Description: dto.Description,
		Author:      dto.Author,
		PublishedAt: dto.PublishedAt,
		Order:       dto.Order,
		Active:      dto.Active,
	}
	var created models.CategoryNews
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateItemDTO) (*models.CategoryNews, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Kind != nil {
		if _, ok := validKinds[*dto.Kind]; !ok {
			return nil, errInvalidKind
		}
		fields["kind"] = *dto.Kind
	}
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.Image != nil {
		fields["image"] = dto.Image
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.Author != nil {
		fields["author"] = *dto.Author
	}
	if dto.PublishedAt != nil {
		fields["publishedAt"] = dto.PublishedAt
	}
	if dto.Order != nil {
		fields["order"] = *dto.Order
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}

	var updated models.CategoryNews
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
