package story

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
	errMissingID     = errors.New("story: _id is required")
	errDuplicateSlug = errors.New("story: slug already exists")
)

type CreateStoryDTO struct {
	Title       string           `json:"title" binding:"required"`
	Slug        string           `json:"slug" binding:"required"`
	Author      string           `json:"author"`
	MainImage   *models.ImageRef `json:"mainImage"`
	Excerpt     models.RichText  `json:"excerpt"`
	Body        models.RichText  `json:"body"`
	PublishedAt *time.Time       `json:"publishedAt"`
	Featured    *bool            `json:"featured"`
	Category    string           `json:"category"`
}

type UpdateStoryDTO struct {
	ID          string           `json:"_id"`
	Title       *string          `json:"title"`
	Slug        *string          `json:"slug"`
	Author      *string          `json:"author"`
	MainImage   *models.ImageRef `json:"mainImage"`
	Excerpt     *models.RichText `json:"excerpt"`
	Body        *models.RichText `json:"body"`
	PublishedAt *time.Time       `json:"publishedAt"`
	Featured    *bool            `json:"featured"`
	Category    *string          `json:"category"`
}

type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

const listQuery = `*[_type == $type] | order(publishedAt desc, _createdAt desc)`

// List returns stories for the reader surface. includeAll keeps
// unpublished drafts, used by the admin listing.
func (s *Service) List(ctx context.Context, category string, featuredOnly bool, limit int, includeAll bool) ([]models.Story, error) {
	var stories []models.Story
	err := s.st.FetchInto(ctx, listQuery, map[string]interface{}{"type": models.TypeStory}, &stories)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.Story{}, nil
		}
		return nil, err
	}

	now := time.Now()
	out := make([]models.Story, 0, len(stories))
	for _, st := range stories {
		if !includeAll && !st.Published(now) {
			continue
		}
		if category != "" && st.Category != category {
			continue
		}
		if featuredOnly && !st.Featured {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return publishedOrCreated(&out[i]).After(publishedOrCreated(&out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetBySlug fetches a single story; store.ErrNotFound when absent.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	var stories []models.Story
	err := s.st.FetchInto(ctx,
		`*[_type == $type && slug == $slug][0...1]`,
		map[string]interface{}{"type": models.TypeStory, "slug": slug},
		&stories)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return nil, store.ErrNotFound
	}
	return &stories[0], nil
}

// Create inserts a story after checking slug uniqueness.
func (s *Service) Create(ctx context.Context, dto *CreateStoryDTO) (*models.Story, error) {
	slug := strings.TrimSpace(dto.Slug)
	if _, err := s.GetBySlug(ctx, slug); err == nil {
		return nil, errDuplicateSlug
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	doc := models.Story{
		Base:        models.Base{Type: models.TypeStory},
		Title:       dto.Title,
		Slug:        slug,
		Author:      dto.Author,
		MainImage:   dto.MainImage,
		Excerpt:     dto.Excerpt,
		Body:        dto.Body,
		PublishedAt: dto.PublishedAt,
		Category:    dto.Category,
	}
	if dto.Featured != nil {
		doc.Featured = *dto.Featured
	}

	var created models.Story
	if err := s.st.CreateInto(ctx, doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update patches the identified story. A slug change re-checks uniqueness.
func (s *Service) Update(ctx context.Context, dto *UpdateStoryDTO) (*models.Story, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return nil, errMissingID
	}

	fields := map[string]interface{}{}
	if dto.Title != nil {
		fields["title"] = *dto.Title
	}
	if dto.Slug != nil {
		slug := strings.TrimSpace(*dto.Slug)
		if existing, err := s.GetBySlug(ctx, slug); err == nil && existing.ID != dto.ID {
			return nil, errDuplicateSlug
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		fields["slug"] = slug
	}
	if dto.Author != nil {
		fields["author"] = *dto.Author
	}
	if dto.MainImage != nil {
		fields["mainImage"] = dto.MainImage
	}
	if dto.Excerpt != nil {
		fields["excerpt"] = dto.Excerpt
	}
	if dto.Body != nil {
		fields["body"] = dto.Body
	}
	if dto.PublishedAt != nil {
		fields["publishedAt"] = dto.PublishedAt
	}
	if dto.Featured != nil {
		fields["featured"] = *dto.Featured
	}
	if dto.Category != nil {
		fields["category"] = *dto.Category
	}

	var updated models.Story
	if err := s.st.Patch(dto.ID).Set(fields).CommitInto(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the identified story.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	return s.st.Delete(ctx, id)
}

func publishedOrCreated(st *models.Story) time.Time {
	if st.PublishedAt != nil {
		return *st.PublishedAt
	}
	return st.CreatedAt
}
