// Package projects is the stateful facade over the project endpoints. The
// store owns the in-memory project collection; every mutation goes through a
// store operation and lands only after the server has confirmed it.
package projects

import (
	"context"
	"sync"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
	"github.com/luxgrid/luxgrid-admin/internal/logging"
	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

// Store caches the last-fetched project collection. Operations never return
// errors: failures are logged and signalled via nil/false/empty results; the
// HTTP layer has already produced the user-visible notification.
type Store struct {
	mu       sync.Mutex
	client   *backend.Client
	projects []domain.Project
}

func NewStore(client *backend.Client) *Store {
	return &Store{client: client}
}

// Projects returns a copy of the cached collection.
func (s *Store) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Fetch loads all projects and replaces the cached collection. Empty slice on
// failure.
func (s *Store) Fetch(ctx context.Context) []domain.Project {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[[]wire.ProjectResponse]
	if err := s.client.GetJSON(ctx, "/projects", &env); err != nil {
		logger.LogError("fetch_projects", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("fetch_projects", "response carried no data")
		return nil
	}

	fetched := make([]domain.Project, 0, len(env.Data))
	for _, r := range env.Data {
		fetched = append(fetched, wire.MapProject(r))
	}

	s.mu.Lock()
	s.projects = fetched
	s.mu.Unlock()

	out := make([]domain.Project, len(fetched))
	copy(out, fetched)
	return out
}

// Create uploads a new project as multipart form data: three text fields plus
// the fixture and zone CSV files. On success the new project is prepended to
// the cached collection and the full creation aggregate is returned.
func (s *Store) Create(ctx context.Context, name, companyName, location string, fixtureCSV, zoneCSV backend.FilePart) *domain.ProjectDetails {
	logger := logging.NewLogger(ctx)

	fields := map[string]string{
		"name":        name,
		"companyName": companyName,
		"location":    location,
	}

	var env wire.Envelope[*wire.ProjectDetailsResponse]
	err := s.client.PostMultipart(ctx, "/projects", fields, []backend.FilePart{fixtureCSV, zoneCSV}, &env)
	if err != nil {
		logger.LogError("create_project", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("create_project", "response carried no data")
		return nil
	}

	details := wire.MapProjectDetails(*env.Data)

	s.mu.Lock()
	s.projects = append([]domain.Project{details.Project}, s.projects...)
	s.mu.Unlock()

	return &details
}

// FetchByID returns one project with its fixtures and zones. Does not touch
// the cached collection.
func (s *Store) FetchByID(ctx context.Context, id string) *domain.ProjectDetails {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.ProjectDetailsResponse]
	if err := s.client.GetJSON(ctx, "/projects/"+id, &env); err != nil {
		logger.LogError("fetch_project", err)
		return nil
	}
	if env.Data == nil {
		return nil
	}

	details := wire.MapProjectDetails(*env.Data)
	return &details
}

// Update applies a partial update and replaces the matching cached entry.
func (s *Store) Update(ctx context.Context, id string, patch domain.ProjectPatch) *domain.Project {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.ProjectResponse]
	if err := s.client.PatchJSON(ctx, "/projects/"+id, patch, &env); err != nil {
		logger.LogError("update_project", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("update_project", "response carried no data")
		return nil
	}

	updated := wire.MapProject(*env.Data)

	s.mu.Lock()
	for i, p := range s.projects {
		if p.ID == id {
			s.projects[i] = updated
		}
	}
	s.mu.Unlock()

	return &updated
}

// Delete removes the project server-side, then filters it out of the cached
// collection, leaving the order of the rest untouched. False on any failure;
// the collection is unchanged in that case.
func (s *Store) Delete(ctx context.Context, id string) bool {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[bool]
	if err := s.client.Delete(ctx, "/projects/"+id, &env); err != nil {
		logger.LogError("delete_project", err)
		return false
	}

	s.mu.Lock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.mu.Unlock()

	return true
}

// Clone asks the server to copy a project (with its fixtures and zones) under
// a new name, then appends the copy to the cached collection.
func (s *Store) Clone(ctx context.Context, id, newName string) *domain.ProjectDetails {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[*wire.ProjectDetailsResponse]
	err := s.client.PostJSON(ctx, "/projects/"+id+"/clone", map[string]string{"name": newName}, &env)
	if err != nil {
		logger.LogError("clone_project", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("clone_project", "response carried no data")
		return nil
	}

	details := wire.MapProjectDetails(*env.Data)

	s.mu.Lock()
	s.projects = append(s.projects, details.Project)
	s.mu.Unlock()

	return &details
}
