package projects

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxgrid/luxgrid-admin/internal/backend"
	"github.com/luxgrid/luxgrid-admin/internal/domain"
	"github.com/luxgrid/luxgrid-admin/internal/notify"
	"github.com/luxgrid/luxgrid-admin/internal/policy"
	"github.com/luxgrid/luxgrid-admin/internal/session"
)

func newStore(t *testing.T, handler http.Handler) (*Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := session.NewMemoryProvider(nil)
	provider.Register("tester", "pw", "tester@example.com")
	require.NoError(t, provider.SignIn(context.Background(), "tester", "pw"))

	client := backend.New(backend.Config{BaseURL: server.URL}, provider, policy.Default(), notify.Discard{}, nil)
	return NewStore(client), server
}

func projectJSON(id, name string) string {
	return fmt.Sprintf(`{"Id": %q, "Name": %q, "CompanyName": "Acme", "Location": "Oslo"}`, id, name)
}

func TestFetch_ReplacesCollection(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Data": [%s, %s]}`, projectJSON("p1", "Alpha"), projectJSON("p2", "Beta"))
	}))

	fetched := store.Fetch(context.Background())
	require.Len(t, fetched, 2)
	assert.Equal(t, "Alpha", fetched[0].Name)
	assert.Equal(t, "Acme", fetched[0].CompanyName)

	cached := store.Projects()
	require.Len(t, cached, 2)
	assert.Equal(t, "p2", cached[1].ID)
}

func TestFetch_NilDataLeavesCollectionAlone(t *testing.T) {
	var nilData bool
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if nilData {
			fmt.Fprint(w, `{"Data": null, "Message": "ok"}`)
			return
		}
		fmt.Fprintf(w, `{"Data": [%s]}`, projectJSON("p1", "Alpha"))
	}))

	require.Len(t, store.Fetch(context.Background()), 1)

	nilData = true
	assert.Nil(t, store.Fetch(context.Background()))
	assert.Len(t, store.Projects(), 1, "failed fetch must not clobber the cache")
}

func TestCreate_UploadsMultipartAndPrepends(t *testing.T) {
	var (
		gotFields map[string]string
		gotFiles  map[string]string
	)
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, projectJSON("p1", "Existing"))
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		gotFields = map[string]string{
			"name":        r.FormValue("name"),
			"companyName": r.FormValue("companyName"),
			"location":    r.FormValue("location"),
		}
		gotFiles = make(map[string]string)
		for field, headers := range r.MultipartForm.File {
			gotFiles[field] = headers[0].Filename
		}

		fmt.Fprintf(w, `{"Data": {"Project": %s, "Fixtures": [], "Zones": []}, "Message": "Project created"}`,
			projectJSON("p2", "New"))
	}))

	store.Fetch(context.Background())

	details := store.Create(context.Background(), "New", "Acme", "Oslo",
		backend.FilePart{Field: "fixtureCSV", FileName: "fixtures.csv", Reader: strings.NewReader("name\nf1")},
		backend.FilePart{Field: "zoneCSV", FileName: "zones.csv", Reader: strings.NewReader("name\nz1")},
	)
	require.NotNil(t, details)
	assert.Equal(t, "p2", details.Project.ID)
	assert.NotNil(t, details.Fixtures)
	assert.NotNil(t, details.Zones)

	assert.Equal(t, map[string]string{"name": "New", "companyName": "Acme", "location": "Oslo"}, gotFields)
	assert.Equal(t, map[string]string{"fixtureCSV": "fixtures.csv", "zoneCSV": "zones.csv"}, gotFiles)

	cached := store.Projects()
	require.Len(t, cached, 2)
	assert.Equal(t, "p2", cached[0].ID, "new project goes to the front")
	assert.Equal(t, "p1", cached[1].ID)
}

func TestCreate_FailureLeavesCollectionAlone(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, projectJSON("p1", "Existing"))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "name is required"}`)
	}))

	store.Fetch(context.Background())

	details := store.Create(context.Background(), "", "", "",
		backend.FilePart{Field: "fixtureCSV", FileName: "f.csv", Reader: strings.NewReader("name")},
		backend.FilePart{Field: "zoneCSV", FileName: "z.csv", Reader: strings.NewReader("name")},
	)
	assert.Nil(t, details)
	assert.Len(t, store.Projects(), 1)
}

func TestFetchByID_ReturnsAggregateWithoutTouchingCache(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/p1", r.URL.Path)
		fmt.Fprintf(w, `{"Data": {"Project": %s, "Fixtures": [{"Id": "f1", "Name": "Spot", "ProjectId": "p1"}], "Zones": []}}`,
			projectJSON("p1", "Alpha"))
	}))

	details := store.FetchByID(context.Background(), "p1")
	require.NotNil(t, details)
	assert.Equal(t, "Alpha", details.Project.Name)
	require.Len(t, details.Fixtures, 1)
	assert.Equal(t, "Spot", details.Fixtures[0].Name)

	assert.Empty(t, store.Projects())
}

func TestUpdate_ReplacesMatchingEntry(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s, %s]}`, projectJSON("p1", "Alpha"), projectJSON("p2", "Beta"))
			return
		}
		require.Equal(t, http.MethodPatch, r.Method)
		fmt.Fprintf(w, `{"Data": %s, "Message": "Project updated"}`, projectJSON("p2", "Beta Renamed"))
	}))

	store.Fetch(context.Background())

	name := "Beta Renamed"
	updated := store.Update(context.Background(), "p2", domain.ProjectPatch{Name: &name})
	require.NotNil(t, updated)
	assert.Equal(t, "Beta Renamed", updated.Name)

	cached := store.Projects()
	require.Len(t, cached, 2)
	assert.Equal(t, "Alpha", cached[0].Name)
	assert.Equal(t, "Beta Renamed", cached[1].Name)
}

func TestDelete_RemovesExactlyTheTarget(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s, %s, %s]}`,
				projectJSON("p1", "Alpha"), projectJSON("p2", "Beta"), projectJSON("p3", "Gamma"))
			return
		}
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/projects/p2", r.URL.Path)
		fmt.Fprint(w, `{"Data": true, "Message": "Project deleted"}`)
	}))

	store.Fetch(context.Background())

	assert.True(t, store.Delete(context.Background(), "p2"))

	cached := store.Projects()
	require.Len(t, cached, 2)
	assert.Equal(t, "p1", cached[0].ID)
	assert.Equal(t, "p3", cached[1].ID, "surviving order is preserved")
}

func TestDelete_FailureLeavesCollectionUnchanged(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s, %s]}`, projectJSON("p1", "Alpha"), projectJSON("p2", "Beta"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))

	store.Fetch(context.Background())

	assert.False(t, store.Delete(context.Background(), "p2"))
	assert.Len(t, store.Projects(), 2)
}

func TestClone_AppendsCopy(t *testing.T) {
	store, _ := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"Data": [%s]}`, projectJSON("p1", "Alpha"))
			return
		}
		require.Equal(t, "/projects/p1/clone", r.URL.Path)
		fmt.Fprintf(w, `{"Data": {"Project": %s, "Fixtures": [], "Zones": []}, "Message": "Project cloned"}`,
			projectJSON("p9", "Alpha Copy"))
	}))

	store.Fetch(context.Background())

	details := store.Clone(context.Background(), "p1", "Alpha Copy")
	require.NotNil(t, details)
	assert.Equal(t, "Alpha Copy", details.Project.Name)

	cached := store.Projects()
	require.Len(t, cached, 2)
	assert.Equal(t, "p9", cached[1].ID, "clone goes to the back")
}
