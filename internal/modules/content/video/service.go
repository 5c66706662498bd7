package video

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var errMissingID = errors.New("video: _id is required")

type CreateVideoDTO struct {
	Title     string           `json:"title" binding:"required"`
	VideoURL  string           `json:"videoUrl" binding:"required"`
	Thumbnail *models.ImageRef `json:"thumbnail"`
	Order     int              `json:"order"`
	Active    *bool            `json:"active"`
}

type UpdateVideoDTO struct {
	ID        string           `json:"_id"`
	Title     *string          `json:"title"`
	VideoURL  *string          `json:"videoUrl"`
	Thumbnail *models.ImageRef `json:"thumbnail"`
	Order     *int             `json:"order"`
	Active    *bool            `json:"active"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

func (s *Service) List(ctx context.Context, includeAll bool) ([]models.VideoGalleryItem, error) {
	var items []models.VideoGalleryItem
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeVideo},
		&items)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.VideoGalleryItem{}, nil
		}
		return nil, err
	}

	out := make([]models.VideoGalleryItem, 0, len(items))
	for _, it := range items {
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

func (s *Service) Create(ctx context.Context, dto *CreateVideoDTO) (*models.VideoGalleryItem, error) {
	doc := models.VideoGalleryItem{
		Base:      models.Base{Type: models.TypeVideo},
		Title:     dto.Title,
		VideoURL:  dto.VideoURL,
		Thumbnail: dto.Thumbnail,
		Order:     dto.Order,
		Active:    dto.Active,
	}
	var created models.VideoGalleryItem
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateVideoDTO) (*models.VideoGalleryItem, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.VideoURL != nil {
		fields["videoUrl"] = *dto.VideoURL
	}
	if dto.Thumbnail != nil {
		fields["thumbnail"] = dto.Thumbnail
	}
	if dto.Order != nil {
		fields["order"] = *dto.Order
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}

	var updated models.VideoGalleryItem
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
