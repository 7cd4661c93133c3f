package configuration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/notify"
	"github.com/luxgrid/luxgrid-admin/internal/policy"
	"github.com/luxgrid/luxgrid-admin/internal/session"
)

const bundleJSON = `{
	"deviceTypes": [{"Id": "dt1", "Name": "Dimmer"}],
	"panelTypes": [{"Id": "pt1", "Name": "Rail Panel", "NumberOfRail": 4, "IsRoomBox": false}],
	"devices": [{"Id": "d1", "Name": "Relay", "DeviceTypeId": "dt1"}]
}`

func newStore(t *testing.T, handler http.Handler) (*Store, *session.MemoryProvider, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/configurations" && r.Method == http.MethodGet {
			hits.Add(1)
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	provider := session.NewMemoryProvider(nil)
	provider.Register("tester", "pw", "tester@example.com")

	client := backend.New(backend.Config{BaseURL: server.URL}, provider, policy.Default(), notify.Discard{}, nil)
	return NewStore(client, time.Minute), provider, &hits
}

func bundleHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Data": %s, "Message": "Configuration loaded"}`, bundleJSON)
	})
}

func TestFetch_MapsEachCollection(t *testing.T) {
	store, provider, _ := newStore(t, bundleHandler())
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	cfg := store.Fetch(context.Background())
	require.NotNil(t, cfg)
	require.Len(t, cfg.DeviceTypes, 1)
	assert.Equal(t, "Dimmer", cfg.DeviceTypes[0].Name)
	require.Len(t, cfg.PanelTypes, 1)
	assert.Equal(t, 4, cfg.PanelTypes[0].NumberOfRail)
	require.Len(t, cfg.Devices, 1)
	assert.Equal(t, "dt1", cfg.Devices[0].DeviceTypeID)
}

func TestFetch_UsesCacheWithinTTL(t *testing.T) {
	store, provider, hits := newStore(t, bundleHandler())
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	require.NotNil(t, store.Fetch(context.Background()))
	require.NotNil(t, store.Fetch(context.Background()))
	require.NotNil(t, store.Fetch(context.Background()))

	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_NilDataIsAFailure(t *testing.T) {
	store, provider, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Data": null, "Message": "ok"}`)
	}))
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	assert.Nil(t, store.Fetch(context.Background()))
	assert.Nil(t, store.Configuration())
}

func TestBindAuthEvents_FetchesOncePerSession(t *testing.T) {
	store, provider, hits := newStore(t, bundleHandler())
	store.BindAuthEvents(provider.Events())

	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))
	assert.Equal(t, int32(1), hits.Load())
	assert.NotNil(t, store.Configuration())

	// Re-signing in while already authenticated emits no transition.
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestBindAuthEvents_SignOutDropsBundleAndNextSessionRefetches(t *testing.T) {
	store, provider, hits := newStore(t, bundleHandler())
	store.BindAuthEvents(provider.Events())

	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))
	require.NotNil(t, store.Configuration())

	require.NoError(t, provider.SignOut(context.Background()))
	assert.Nil(t, store.Configuration())

	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))
	assert.Equal(t, int32(2), hits.Load())
	assert.NotNil(t, store.Configuration())
}

func TestFetchDeviceTypes_StandaloneListing(t *testing.T) {
	store, provider, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/configurations/device-types", r.URL.Path)
		fmt.Fprint(w, `{"Data": [{"Id": "dt1", "Name": "Dimmer"}, {"Id": "dt2", "Name": "Sensor"}]}`)
	}))
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	types := store.FetchDeviceTypes(context.Background())
	require.Len(t, types, 2)
	assert.Equal(t, "Sensor", types[1].Name)
}

func TestFetchPanelTypes_StandaloneListing(t *testing.T) {
	store, provider, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/configurations/panel-types", r.URL.Path)
		fmt.Fprint(w, `{"Data": [{"Id": "pt1", "Name": "Room Box", "IsRoomBox": true}]}`)
	}))
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	types := store.FetchPanelTypes(context.Background())
	require.Len(t, types, 1)
	assert.True(t, types[0].IsRoomBox)
}
