package singleton

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/localherald/core/internal/models"
	"github.com/localherald/core/internal/store"
)

// Service manages documents of which exactly one instance is meant to
// exist per type. Upsert patches the first existing document or creates
// one when none is found. Two concurrent first writes can still race
// into two documents; reads always take the oldest so the surface stays
// deterministic.
type Service struct {
	st *store.Client
}

func NewService(st *store.Client) *Service {
	return &Service{st: st}
}

const firstQuery = `*[_type == $type] | order(_createdAt asc) [0...1]`

// Get decodes the singleton of the given type into out.
// store.ErrNotFound when no document exists yet.
func (s *Service) Get(ctx context.Context, docType string, out interface{}) error {
	var raw []json.RawMessage
	err := s.st.FetchInto(ctx, firstQuery,
		map[string]interface{}{"type": docType}, &raw)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return store.ErrNotFound
	}
	return json.Unmarshal(raw[0], out)
}

// Upsert writes the payload fields onto the existing singleton, or
// creates it when absent. The updated document is decoded into out.
func (s *Service) Upsert(ctx context.Context, docType string, fields map[string]interface{}, out interface{}) error {
	var existing []models.Base
	err := s.st.FetchInto(ctx, firstQuery,
		map[string]interface{}{"type": docType}, &existing)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if len(existing) > 0 {
		return s.st.Patch(existing[0].ID).Set(fields).CommitInto(ctx, out)
	}

	doc := map[string]interface{}{"_type": docType}
	for k, v := range fields {
		doc[k] = v
	}
	return s.st.CreateInto(ctx, doc, out)
}
