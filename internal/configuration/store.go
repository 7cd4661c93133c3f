// Package configuration fetches and caches the read-only reference bundle:
// device types, panel types and devices.
package configuration

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
	"github.com/luxgrid/luxgrid-admin/internal/logging"
	"github.com/luxgrid/luxgrid-admin/internal/session"
	"github.com/luxgrid/luxgrid-admin/internal/wire"
)

const bundleKey = "configuration"

// Store holds the configuration bundle for the current authenticated session.
// The fetch runs once per session transition, not per read; a TTL cache
// additionally absorbs explicit re-fetch calls within its window.
type Store struct {
	mu            sync.Mutex
	client        *backend.Client
	cache         *gocache.Cache
	configuration *domain.Configuration
	fetchedOnce   bool
}

func NewStore(client *backend.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// BindAuthEvents subscribes the store to session transitions: fetch once on
// becoming authenticated, drop everything on sign-out.
func (s *Store) BindAuthEvents(events *session.Events) {
	events.Subscribe(func(authenticated bool) {
		if authenticated {
			s.mu.Lock()
			pending := !s.fetchedOnce
			s.fetchedOnce = true
			s.mu.Unlock()
			if pending {
				s.Fetch(context.Background())
			}
			return
		}
		s.Reset()
	})
}

// Configuration returns the cached bundle, nil before the first successful
// fetch of the session.
func (s *Store) Configuration() *domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configuration
}

// Fetch loads the bundled configuration endpoint and maps each sub-collection
// independently. Nil on failure; a response without data is a failure even on
// HTTP 200.
func (s *Store) Fetch(ctx context.Context) *domain.Configuration {
	logger := logging.NewLogger(ctx)

	if cached, ok := s.cache.Get(bundleKey); ok {
		cfg := cached.(domain.Configuration)
		s.mu.Lock()
		s.configuration = &cfg
		s.mu.Unlock()
		return &cfg
	}

	var env wire.Envelope[*wire.ConfigurationResponse]
	if err := s.client.GetJSON(ctx, "/configurations", &env); err != nil {
		logger.LogError("fetch_configuration", err)
		return nil
	}
	if env.Data == nil {
		logger.LogWarn("fetch_configuration", "response carried no data")
		return nil
	}

	cfg := wire.MapConfiguration(*env.Data)

	s.cache.Set(bundleKey, cfg, gocache.DefaultExpiration)
	s.mu.Lock()
	s.configuration = &cfg
	s.mu.Unlock()

	return &cfg
}

// FetchDeviceTypes loads the standalone device-type listing.
func (s *Store) FetchDeviceTypes(ctx context.Context) []domain.DeviceType {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[[]wire.DeviceTypeResponse]
	if err := s.client.GetJSON(ctx, "/configurations/device-types", &env); err != nil {
		logger.LogError("fetch_device_types", err)
		return nil
	}
	if env.Data == nil {
		return nil
	}

	out := make([]domain.DeviceType, 0, len(env.Data))
	for _, r := range env.Data {
		out = append(out, wire.MapDeviceType(r))
	}
	return out
}

// FetchPanelTypes loads the standalone panel-type listing.
func (s *Store) FetchPanelTypes(ctx context.Context) []domain.PanelType {
	logger := logging.NewLogger(ctx)

	var env wire.Envelope[[]wire.PanelTypeResponse]
	if err := s.client.GetJSON(ctx, "/configurations/panel-types", &env); err != nil {
		logger.LogError("fetch_panel_types", err)
		return nil
	}
	if env.Data == nil {
		return nil
	}

	out := make([]domain.PanelType, 0, len(env.Data))
	for _, r := range env.Data {
		out = append(out, wire.MapPanelType(r))
	}
	return out
}

// Reset drops the cached bundle so the next session fetches fresh data.
func (s *Store) Reset() {
	s.cache.Delete(bundleKey)
	s.mu.Lock()
	s.configuration = nil
	s.fetchedOnce = false
	s.mu.Unlock()
}
