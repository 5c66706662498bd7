package doctor

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

var errMissingID = errors.New("doctor: _id is required")

type CreateDoctorDTO struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital"`
	Phone          string `json:"phone"`
	Availability   string `json:"availability"`
	Order          int    `json:"order"`
	Active         *bool  `json:"active"`
}

type UpdateDoctorDTO struct {
	ID             string  `json:"_id"`
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Hospital       *string `json:"hospital"`
	Phone          *string `json:"phone"`
	Availability   *string `json:"availability"`
	Order          *int    `json:"order"`
	Active         *bool   `json:"active"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

// List returns the directory ordered by the editorial order field.
func (s *Service) List(ctx context.Context, includeAll bool) ([]models.Doctor, error) {
	var docs []models.Doctor
	err := s.st.FetchInto(ctx,
		`*[_type == $type] | order(_createdAt desc)`,
		map[string]interface{}{"type": models.TypeDoctor},
		&docs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.Doctor{}, nil
		}
		return nil, err
	}

	out := make([]models.Doctor, 0, len(docs))
	for _, d := range docs {
		if !includeAll && !models.IsActive(d.Active) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateDoctorDTO) (*models.Doctor, error) {
	doc := models.Doctor{
		Base:           models.Base{Type: models.TypeDoctor},
		Name:           dto.Name,
		Specialization: dto.Specialization,
		Hospital:       dto.Hospital,
		Phone:          dto.Phone,
		Availability:   dto.Availability,
		Order:          dto.Order,
		Active:         dto.Active,
	}
	var created models.Doctor
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, dto *UpdateDoctorDTO) (*models.Doctor, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Specialization != nil {
		fields["specialization"] = *dto.Specialization
	}
	if dto.Hospital != nil {
		fields["hospital"] = *dto.Hospital
	}
	if dto.Phone != nil {
		fields["phone"] = *dto.Phone
	}
	if dto.Availability != nil {
		fields["availability"] = *dto.Availability
	}
	if dto.Order != nil {
		fields["order"] = *dto.Order
	}
	if dto.Active != nil {
		fields["active"] = *dto.Active
	}

	var updated models.Doctor
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
