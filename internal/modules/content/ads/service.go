package ads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var (
	errMissingID       = errors.New("ads: _id is required")
	errInvalidPosition = errors.New("ads: unknown position")
)

var validPositions = map[string]struct{}{
	models.AdPositionTop:     {},
	models.AdPositionSidebar: {},
	models.AdPositionInline:  {},
	models.AdPositionFooter:  {},
}

type CreateAdDTO struct {
	Title     string           `json:"title"`
	Position  string           `json:"position" binding:"required"`
	Image     *models.ImageRef `json:"image"`
	VideoURL  string           `json:"videoUrl"`
	Link      string           `json:"link"`
	Active    *bool            `json:"active"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
}

type UpdateAdDTO struct {
	ID        string           `json:"_id"`
	Title     *string          `json:"title"`
	Position  *string          `json:"position"`
	Image     *models.ImageRef `json:"image"`
	VideoURL  *string          `json:"videoUrl"`
	Link      *string          `json:"link"`
	Active    *bool            `json:"active"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

// ListByPosition returns the ads currently runnable in a slot. Inactive
// ads and ads outside their date window are skipped.
func (s *Service) ListByPosition(ctx context.Context, position string) ([]models.Advertisement, error) {
	if _, ok := validPositions[position]; !ok {
		return nil, errInvalidPosition
	}
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]models.Advertisement, 0, len(all))
	for _, ad := range all {
		if ad.Position != position || !ad.Visible(now) {
			continue
		}
		out = append(out, ad)
	}
	return out, nil
}

// ListAll returns every ad regardless of state, for the admin table.
func (s *Service) ListAll(ctx context.Context) ([]models.Advertisement, error) {
	return s.listAll(ctx)
}

func (s *Service) listAll(ctx context.Context) ([]models.Advertisement, error) {
	var ad []models.Advertisement
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeAd},
		&ad)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.Advertisement{}, nil
		}
		return nil, err
	}
	return ad, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateAdDTO) (*models.Advertisement, error) {
	if _, ok := validPositions[dto.Position]; !ok {
		return nil, errInvalidPosition
	}
	doc := models.Advertisement{
		Base:      models.Base{Type: models.TypeAd},
		Title:     dto.Title,
		Position:  dto.Position,
		Image:     dto.Image,
		VideoURL:  dto.VideoURL,
		Link:      dto.Link,
		Active:    dto.Active,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
	}
	var created models.Advertisement
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateAdDTO) (*models.Advertisement, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.Position != nil {
		if _, ok := validPositions[*dto.Position]; !ok {
			return nil, errInvalidPosition
		}
		fields["position"] = *dto.Position
	}
	if dto.Image != nil {
		fields["image"] = dto.Image
	}
	if dto.VideoURL != nil {
		fields["videoUrl"] = *dto.VideoURL
	}
	if dto.Link != nil {
		fields["link"] = *dto.Link
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}
	if dto.StartDate != nil {
		fields["startDate"] = dto.StartDate
	}
	if dto.EndDate != nil {
		fields["endDate"] = dto.EndDate
	}

	var updated models.Advertisement
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
