// Package storetest provides an in-memory stand-in for the external
// content store's HTTP API, for use in tests.
package storetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/localherald/core/internal/config"
	"github.com/localherald/core/internal/store"
)

// Server fakes the store's query, mutate, and asset endpoints against
// an in-memory document set. It understands just enough of the query
// shapes the services issue: filter by $type, optional $slug/$id, and
// _createdAt ordering.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	docs     []map[string]interface{}
	nextID   int
	mutCalls int
}

func New() *Server {
	s := &Server{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.route)
	s.srv = httptest.NewServer(mux)
	return s
}

func (s *Server) Close() { s.srv.Close() }

// Client builds a store client pointed at this fake.
func (s *Server) Client() *store.Client {
	return store.New(config.StoreConfig{
		Endpoint:   s.srv.URL,
		Dataset:    "test",
		APIVersion: "v1",
	})
}

// Seed inserts a document, assigning _id and _createdAt when missing.
// The document is passed through JSON so typed models can be seeded.
func (s *Server) Seed(doc interface{}) map[string]interface{} {
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(m)
	return m
}

func (s *Server) seedLocked(m map[string]interface{}) {
	if id, _ := m["_id"].(string); id == "" {
		s.nextID++
		m["_id"] = fmt.Sprintf("doc-%d", s.nextID)
	}
	// A zero time.Time marshals as "0001-01-01T00:00:00Z", not "";
	// treat that as missing too.
	if at, _ := m["_createdAt"].(string); at == "" || strings.HasPrefix(at, "0001-01-01T") {
		s.nextID++
		m["_createdAt"] = time.Now().Add(time.Duration(s.nextID) * time.Second).UTC().Format("2006-01-02T15:04:05.000Z")
	}
	s.docs = append(s.docs, m)
}

// Documents returns a snapshot of all stored documents of a type;
// empty type means everything.
func (s *Server) Documents(docType string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]interface{}, 0, len(s.docs))
	for _, d := range s.docs {
		if docType == "" || d["_type"] == docType {
			out = append(out, d)
		}
	}
	return out
}

// MutateCalls reports how many mutation batches the server received.
func (s *Server) MutateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutCalls
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.Contains(r.URL.Path, "/data/query/"):
		s.handleQuery(w, r)
	case strings.Contains(r.URL.Path, "/data/mutate/"):
		s.handleMutate(w, r)
	case strings.Contains(r.URL.Path, "/assets/"):
		s.handleAsset(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	params := map[string]string{}
	for name, vals := range r.URL.Query() {
		if strings.HasPrefix(name, "$") && len(vals) > 0 {
			var decoded string
			if err := json.Unmarshal([]byte(vals[0]), &decoded); err == nil {
				params[name[1:]] = decoded
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.HasPrefix(query, "count(") {
		writeJSON(w, map[string]interface{}{"result": 0})
		return
	}

	matched := make([]map[string]interface{}, 0, len(s.docs))
	for _, d := range s.docs {
		if t, ok := params["type"]; ok && d["_type"] != t {
			continue
		}
		if slug, ok := params["slug"]; ok && d["slug"] != slug {
			continue
		}
		if id, ok := params["id"]; ok && d["_id"] != id {
			continue
		}
		matched = append(matched, d)
	}

	asc := strings.Contains(query, "_createdAt asc")
	sort.SliceStable(matched, func(i, j int) bool {
		a, _ := matched[i]["_createdAt"].(string)
		b, _ := matched[j]["_createdAt"].(string)
		if asc {
			return a < b
		}
		return a > b
	})

	if strings.Contains(query, "[0...1]") && len(matched) > 1 {
		matched = matched[:1]
	}

	writeJSON(w, map[string]interface{}{"result": matched})
}

func (s *Server) handleMutate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mutations []map[string]json.RawMessage `json:"mutations"`
	}
	raw, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutCalls++

	results := make([]map[string]interface{}, 0, len(body.Mutations))
	for _, mut := range body.Mutations {
		if raw, ok := mut["create"]; ok {
			var doc map[string]interface{}
			if err := json.Unmarshal(raw, &doc); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.seedLocked(doc)
			results = append(results, map[string]interface{}{"document": doc})
		}
		if raw, ok := mut["patch"]; ok {
			var patch struct {
				ID    string                 `json:"id"`
				Set   map[string]interface{} `json:"set"`
				Unset []string               `json:"unset"`
			}
			if err := json.Unmarshal(raw, &patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for _, d := range s.docs {
				if d["_id"] != patch.ID {
					continue
				}
				for k, v := range patch.Set {
					d[k] = v
				}
				for _, k := range patch.Unset {
					delete(d, k)
				}
				results = append(results, map[string]interface{}{"document": d})
			}
		}
		if raw, ok := mut["delete"]; ok {
			var del struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(raw, &del); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			kept := s.docs[:0]
			for _, d := range s.docs {
				if d["_id"] == del.ID {
					results = append(results, map[string]interface{}{"document": d})
					continue
				}
				kept = append(kept, d)
			}
			s.docs = kept
		}
	}

	writeJSON(w, map[string]interface{}{"results": results})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	payload, _ := io.ReadAll(r.Body)
	filename := r.URL.Query().Get("filename")

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("asset-%d", s.nextID)
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"document": map[string]interface{}{
			"_id":  id,
			"url":  s.srv.URL + "/assets/raw/" + filename,
			"path": "assets/raw/" + filename,
			"size": len(payload),
		},
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
