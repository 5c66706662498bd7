package store

import (
	"context"
	"encoding/json"
	"fmt"
)

type mutation map[string]interface{}

// mutate posts a mutation batch and returns the affected documents.
func (c *Client) mutate(ctx context.Context, muts []mutation) ([]json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("returnDocuments", "true").
		SetBody(map[string]interface{}{"mutations": muts}).
		Post(fmt.Sprintf("/%s/data/mutate/%s", c.apiVersion, c.dataset))
	if err != nil {
		return nil, fmt.Errorf("store: mutate: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError("mutate", resp)
	}

	var body struct {
		Results []struct {
			Document json.RawMessage `json:"document"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("store: decode mutate response: %w", err)
	}
	docs := make([]json.RawMessage, 0, len(body.Results))
	for _, r := range body.Results {
		docs = append(docs, r.Document)
	}
	return docs, nil
}

// Create inserts a new document and returns it as stored.
func (c *Client) Create(ctx context.Context, doc interface{}) (json.RawMessage, error) {
	docs, err := c.mutate(ctx, []mutation{{"create": doc}})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("store: create returned no document")
	}
	return docs[0], nil
}

// CreateInto inserts a document and decodes the stored form into dest.
func (c *Client) CreateInto(ctx context.Context, doc, dest interface{}) error {
	raw, err := c.Create(ctx, doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// PatchBuilder accumulates field updates for a single document.
type PatchBuilder struct {
	client *Client
	id     string
	set    map[string]interface{}
	unset  []string
}

// Patch starts a patch against the document with the given id.
func (c *Client) Patch(id string) *PatchBuilder {
	return &PatchBuilder{client: c, id: id, set: map[string]interface{}{}}
}

// Set stages field assignments.
func (p *PatchBuilder) Set(fields map[string]interface{}) *PatchBuilder {
	for k, v := range fields {
		p.set[k] = v
	}
	return p
}

// Unset stages field removals.
func (p *PatchBuilder) Unset(fields ...string) *PatchBuilder {
	p.unset = append(p.unset, fields...)
	return p
}

// Commit applies the staged patch and returns the updated document.
func (p *PatchBuilder) Commit(ctx context.Context) (json.RawMessage, error) {
	if p.id == "" {
		return nil, fmt.Errorf("store: patch requires a document id")
	}
	patch := map[string]interface{}{"id": p.id}
	if len(p.set) > 0 {
		patch["set"] = p.set
	}
	if len(p.unset) > 0 {
		patch["unset"] = p.unset
	}
	docs, err := p.client.mutate(ctx, []mutation{{"patch": patch}})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0], nil
}

// CommitInto applies the patch and decodes the updated document into dest.
func (p *PatchBuilder) CommitInto(ctx context.Context, dest interface{}) error {
	raw, err := p.Commit(ctx)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Delete removes the document with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("store: delete requires a document id")
	}
	_, err := c.mutate(ctx, []mutation{{"delete": mutation{"id": id}}})
	return err
}
