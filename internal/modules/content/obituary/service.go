package obituary

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var errMissingID = errors.New("obituary: _id is required")

type CreateObituaryDTO struct {
	Name           string           `json:"name" binding:"required"`
	Photo          *models.ImageRef `json:"photo"`
	Age            int              `json:"age"`
	Place          string           `json:"place"`
	DateOfDeath    *time.Time       `json:"dateOfDeath"`
	FuneralDetails string           `json:"funeralDetails"`
	Active         *bool            `json:"active"`
}

type UpdateObituaryDTO struct {
	ID             string           `json:"_id"`
	Name           *string          `json:"name"`
	Photo          *models.ImageRef `json:"photo"`
	Age            *int             `json:"age"`
	Place          *string          `json:"place"`
	DateOfDeath    *time.Time       `json:"dateOfDeath"`
	FuneralDetails *string          `json:"funeralDetails"`
	Active         *bool            `json:"active"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

// List returns notices newest death first; undated notices fall back to
// their creation time.
func (s *Service) List(ctx context.Context, includeAll bool) ([]models.Obituary, error) {
	var obits []models.Obituary
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeObituary},
		&obits)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.Obituary{}, nil
		}
		return nil, err
	}

	out := make([]models.Obituary, 0, len(obits))
	for _, o := range obits {
		if !includeAll && !models.IsActive(o.Active) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return deathOrCreated(&out[i]).After(deathOrCreated(&out[j]))
	})
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateObituaryDTO) (*models.Obituary, error) {
	doc := models.Obituary{
		Base:           models.Base{Type: models.TypeObituary},
		Name:           dto.Name,
		Photo:          dto.Photo,
		Age:            dto.Age,
		Place:          dto.Place,
		DateOfDeath:    dto.DateOfDeath,
		FuneralDetails: dto.FuneralDetails,
		Active:         dto.Active,
	}
	var created models.Obituary
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateObituaryDTO) (*models.Obituary, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Photo != nil {
		fields["photo"] = dto.Photo
	}
	if dto.Age != nil {
		fields["age"] = *dto.Age
	}
	if dto.Place != nil {
		fields["place"] = *dto.Place
	}
	if dto.DateOfDeath != nil {
		fields["dateOfDeath"] = dto.DateOfDeath
	}
	if dto.FuneralDetails != nil {
		fields["funeralDetails"] = *dto.FuneralDetails
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}

	var updated models.Obituary
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

func deathOrCreated(o *models.Obituary) time.Time {
	if o.DateOfDeath != nil {
		return *o.DateOfDeath
	}
	return o.CreatedAt
}
