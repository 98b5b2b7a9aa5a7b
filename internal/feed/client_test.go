package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/crdeck/internal/cards"
)

func TestSelect(t *testing.T) {
	c := New(Config{}, nil)
	src := c.Select()
	assert.Equal(t, "fallback", src.Name)
	assert.Equal(t, DefaultMirrorURL, src.URL)
	assert.Equal(t, cards.ShapeArray, src.Shape)

	c = New(Config{Token: "tok"}, nil)
	src = c.Select()
	assert.Equal(t, "official", src.Name)
	assert.Equal(t, DefaultOfficialURL, src.URL)
	assert.Equal(t, cards.ShapeItems, src.Shape)
}

func TestFetchCards_Official(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"items":[{"name":"Hog Rider","id":26000021,"elixirCost":4},{"name":"Mirror"}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Config{Token: "test-token", OfficialURL: srv.URL, MirrorURL: "http://127.0.0.1:1/unused"}, nil)
	cs, err := c.FetchCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 2)

	assert.Equal(t, "Hog Rider", cs[0].Name)
	assert.Equal(t, 4, cs[0].ElixirCost)
	assert.Equal(t, []cards.Role{cards.RoleWincon}, cs[0].Roles)
	assert.Equal(t, 26000021, cs[0].ID)
	assert.Equal(t, cards.DefaultElixirCost, cs[1].ElixirCost)
}

func TestFetchCards_Mirror(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`[{"key":"zap","name":"Zap","elixir":2},{"key":"nameless","elixir":4}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Config{MirrorURL: srv.URL}, nil)
	cs, err := c.FetchCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "Zap", cs[0].Name)
	assert.Equal(t, []cards.Role{cards.RoleSpell}, cs[0].Roles)
	assert.Equal(t, "", auth.Load(), "mirror must not receive credentials")
}

func TestFetchCards_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("rate limited")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Config{MirrorURL: srv.URL}, nil)
	_, err := c.FetchCards(context.Background())
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
	assert.Equal(t, "rate limited", upErr.Body)
	assert.Equal(t, "fallback", upErr.Source)
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestFetchCards_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{MirrorURL: srv.URL}, nil)
	_, err := c.FetchCards(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, _ = c.FetchCards(context.Background())
	assert.Equal(t, int32(2), calls.Load(), "every call re-fetches")
}

func TestFetchCards_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>not json</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Config{MirrorURL: srv.URL}, nil)
	_, err := c.FetchCards(context.Background())

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.NotEmpty(t, tErr.Message)
}

func TestFetchCards_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{MirrorURL: url}, nil)
	_, err := c.FetchCards(context.Background())

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
}

func TestFetchCards_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{MirrorURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.FetchCards(context.Background())

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
}

func TestFetchCards_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"name":"Zap","elixir":2,"pad":"` + strings.Repeat("x", 256) + `"}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Config{MirrorURL: srv.URL}, nil)
	c.maxBody = 64
	_, err := c.FetchCards(context.Background())

	var tErr *TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Contains(t, tErr.Message, "exceeds 64 bytes")

	c.maxBody = maxCatalogBytes
	cs, err := c.FetchCards(context.Background())
	require.NoError(t, err)
	assert.Len(t, cs, 1)
}
