// Package panels is the facade over the panel endpoints. Placement and
// power/space validation belong to the server; this layer only moves whole
// panels around.
package panels

import (
	"context"
	"sync"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
	"github.com/luxgrid/luxgrid-admin/internal/logging"
	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

// Store caches the last-fetched panel collection, same contract as the
// project store: confirmed-response-first mutation, sentinel returns.
type Store struct {
	mu     sync.Mutex
	client *backend.Client
	panels []domain.Panel
}

func NewStore(client *backend.Client) *Store {
	return &Store{client: client}
}

// Panels returns a copy of the cached collection.
func (s *Store) Panels() []domain.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Panel, len(s.panels))
	copy(out, s.panels)
	return out
}

// Fetch loads all panels and replaces the cached collection.
func (s *Store) Fetch(ctx context.Context) []domain.Panel {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[[]wire.PanelResponse]
	if err := s.client.GetJSON(ctx, "/panels", &env); err != nil {
		logger.LogError("fetch_panels", err)
		return nil
	}
	if env.Data == nil {
		return nil
	}

	fetched := make([]domain.Panel, 0, len(env.Data))
	for _, r := range env.Data {
		fetched = append(fetched, wire.MapPanel(r))
	}

	s.mu.Lock()
	s.panels = fetched
	s.mu.Unlock()

	out := make([]domain.Panel, len(fetched))
	copy(out, fetched)
	return out
}

// CreateRequest carries the fields of a new panel.
type CreateRequest struct {
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	PanelTypeID string `json:"panelTypeId"`
}

// Create registers a new panel and prepends it to the cached collection.
func (s *Store) Create(ctx context.Context, req CreateRequest) *domain.Panel {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.PanelResponse]
	if err := s.client.PostJSON(ctx, "/panels", req, &env); err != nil {
		logger.LogError("create_panel", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("create_panel", "response carried no data")
		return nil
	}

	created := wire.MapPanel(*env.Data)

	s.mu.Lock()
	s.panels = append([]domain.Panel{created}, s.panels...)
	s.mu.Unlock()

	return &created
}

// Update replaces a panel via PUT and updates the matching cached entry.
func (s *Store) Update(ctx context.Context, id string, patch domain.PanelPatch) *domain.Panel {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.PanelResponse]
	if err := s.client.PutJSON(ctx, "/panels/"+id, patch, &env); err != nil {
		logger.LogError("update_panel", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("update_panel", "response carried no data")
		return nil
	}

	updated := wire.MapPanel(*env.Data)

	s.mu.Lock()
	for i, p := range s.panels {
		if p.ID == id {
			s.panels[i] = updated
		}
	}
	s.mu.Unlock()

	return &updated
}

// Delete removes a panel and filters it out of the cached collection. False
// on failure, with the collection untouched.
func (s *Store) Delete(ctx context.Context, id string) bool {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[bool]
	if err := s.client.Delete(ctx, "/panels/"+id, &env); err != nil {
		logger.LogError("delete_panel", err)
		return false
	}

	s.mu.Lock()
	kept := s.panels[:0]
	for _, p := range s.panels {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.panels = kept
	s.mu.Unlock()

	return true
}

// Clone copies a panel under a new name and appends the copy to the cached
// collection.
func (s *Store) Clone(ctx context.Context, id, newName string) *domain.Panel {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.PanelResponse]
	err := s.client.PostJSON(ctx, "/panels/"+id+"/clone", map[string]string{"name": newName}, &env)
	if err != nil {
		logger.LogError("clone_panel", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("clone_panel", "response carried no data")
		return nil
	}

	cloned := wire.MapPanel(*env.Data)

	s.mu.Lock()
	s.panels = append(s.panels, cloned)
	s.mu.Unlock()

	return &cloned
}
