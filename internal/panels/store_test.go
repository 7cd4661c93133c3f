package panels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
	"github.com/luxgrid/luxgrid-admin/internal/notify"
	"github.com/luxgrid/luxgrid-admin/internal/policy"
	"github.com/luxgrid/luxgrid-admin/internal/session"
)

func newStore(t *testing.T, handler http.Handler) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := session.NewMemoryProvider(nil)
	provider.Register("tester", "pw", "tester@example.com")
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	client := backend.New(backend.Config{BaseURL: server.URL}, provider, policy.Default(), notify.Discard{}, nil)
	return NewStore(client)
}

func panelJSON(id, name string) string {
	return fmt.Sprintf(`{"Id": %q, "ProjectId": "proj1", "Name": %q, "Location": "Basement", "PanelTypeId": "pt1", "TotalSpaces": 12}`, id, name)
}

func TestFetch_ReplacesCollection(t *testing.T) {
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Data": [%s, %s]}`, panelJSON("pn1", "Main"), panelJSON("pn2", "Annex"))
	}))

	fetched := store.Fetch(context.Background())
	require.Len(t, fetched, 2)
	assert.Equal(t, "Main", fetched[0].Name)
	assert.Equal(t, "pt1", fetched[0].PanelTypeID)
	assert.Equal(t, 12, fetched[0].TotalSpaces)
}

func TestCreate_PostsCamelCaseBodyAndPrepends(t *testing.T) {
	var body map[string]string
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, panelJSON("pn1", "Main"))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprintf(w, `{"Data": %s, "Message": "Panel created"}`, panelJSON("pn2", "Annex"))
	}))

	store.Fetch(context.Background())

	created := store.Create(context.Background(), CreateRequest{
		ProjectID:   "proj1",
		Name:        "Annex",
		Location:    "Basement",
		PanelTypeID: "pt1",
	})
	require.NotNil(t, created)
	assert.Equal(t, "pn2", created.ID)

	assert.Equal(t, map[string]string{
		"projectId":   "proj1",
		"name":        "Annex",
		"location":    "Basement",
		"panelTypeId": "pt1",
	}, body)

	cached := store.Panels()
	require.Len(t, cached, 2)
	assert.Equal(t, "pn2", cached[0].ID)
}

func TestUpdate_UsesPutAndReplacesEntry(t *testing.T) {
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, panelJSON("pn1", "Main"))
			return
		}
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/panels/pn1", r.URL.Path)
		fmt.Fprintf(w, `{"Data": %s, "Message": "Panel updated"}`, panelJSON("pn1", "Main Renamed"))
	}))

	store.Fetch(context.Background())

	name := "Main Renamed"
	updated := store.Update(context.Background(), "pn1", domain.PanelPatch{Name: &name})
	require.NotNil(t, updated)
	assert.Equal(t, "Main Renamed", store.Panels()[0].Name)
}

func TestDelete_FiltersTarget(t *testing.T) {
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s, %s]}`, panelJSON("pn1", "Main"), panelJSON("pn2", "Annex"))
			return
		}
		fmt.Fprint(w, `{"Data": true, "Message": "Panel deleted"}`)
	}))

	store.Fetch(context.Background())

	assert.True(t, store.Delete(context.Background(), "pn1"))

	cached := store.Panels()
	require.Len(t, cached, 1)
	assert.Equal(t, "pn2", cached[0].ID)
}

func TestDelete_FailureLeavesCollectionUnchanged(t *testing.T) {
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, panelJSON("pn1", "Main"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "panel not found"}`)
	}))

	store.Fetch(context.Background())

	assert.False(t, store.Delete(context.Background(), "missing"))
	assert.Len(t, store.Panels(), 1)
}

func TestClone_AppendsCopy(t *testing.T) {
	store := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, panelJSON("pn1", "Main"))
			return
		}
		require.Equal(t, "/panels/pn1/clone", r.URL.Path)
		fmt.Fprintf(w, `{"Data": %s, "Message": "Panel cloned"}`, panelJSON("pn9", "Main Copy"))
	}))

	store.Fetch(context.Background())

	cloned := store.Clone(context.Background(), "pn1", "Main Copy")
	require.NotNil(t, cloned)

	cached := store.Panels()
	require.Len(t, cached, 2)
	assert.Equal(t, "pn9", cached[1].ID)
}
