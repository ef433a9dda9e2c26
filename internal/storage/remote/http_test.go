package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/checklists/internal/storage"
)

// fakeDocServer mimics the docstore: GET returns the last PUT body.
type fakeDocServer struct {
	mu     sync.Mutex
	body   []byte
	status int
}

func (f *fakeDocServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if f.body == nil {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(f.body)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.body = body
		_, _ = w.Write([]byte("OK"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestHTTPStore_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(&fakeDocServer{})
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/data.json", time.Second)
	ctx := context.Background()

	_, err := store.LoadDocument(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.SaveDocument(ctx, []byte(`{"lists":[]}`)))

	got, err := store.LoadDocument(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lists":[]}`, string(got))
}

func TestHTTPStore_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(&fakeDocServer{status: http.StatusInternalServerError})
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/data.json", time.Second)
	ctx := context.Background()

	_, err := store.LoadDocument(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, err.Error(), "500")

	err = store.SaveDocument(ctx, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPStore_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := NewHTTPStore(url+"/data.json", 200*time.Millisecond)
	err := store.SaveDocument(context.Background(), []byte(`{}`))
	require.Error(t, err)
}

func TestHTTPStore_SendsJSONContentType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL, time.Second)
	require.NoError(t, store.SaveDocument(context.Background(), []byte(`{"lists":[]}`)))
	assert.Equal(t, "application/json", gotType)
}

func TestHTTPStore_DocumentSizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "at limit", size: maxDocumentSize},
		{name: "over limit", size: maxDocumentSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(&fakeDocServer{body: []byte(strings.Repeat("a", tt.size))})
			defer srv.Close()

			store := NewHTTPStore(srv.URL+"/data.json", 5*time.Second)
			got, err := store.LoadDocument(context.Background())
			if tt.wantErr {
				require.ErrorIs(t, err, ErrDocumentTooLarge)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.size)
		})
	}
}
