package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingapi/internal/sponsor/models"
)

func requireCategory(t *testing.T, err error, want Category) *RemoteError {
	t.Helper()
	require.Error(t, err)
	var re *RemoteError
	require.True(t, errors.As(err, &re), "expected *RemoteError, got %T: %v", err, err)
	assert.Equal(t, want, re.Category, "error: %v", err)
	return re
}

func TestClient_List(t *testing.T) {
	t.Run("relays the remote body verbatim", func(t *testing.T) {
		body := `[{"MalePrincipalSponsor":"Mr. A","FemalePrincipalSponsor":"Mrs. A","Row":2},{"MalePrincipalSponsor":"","FemalePrincipalSponsor":"Ms. B"}]`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}))
		defer srv.Close()

		got, err := New(Config{URL: srv.URL}).List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	})

	t.Run("empty array is a valid list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		}))
		defer srv.Close()

		got, err := New(Config{URL: srv.URL}).List(context.Background())
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(Config{URL: srv.URL}).List(context.Background())
		re := requireCategory(t, err, CategoryBadStatus)
		assert.Equal(t, http.StatusBadGateway, re.StatusCode)
		assert.Equal(t, OperationList, re.Operation)
	})

	malformed := map[string]string{
		"not json":            `<html>sign in</html>`,
		"empty body":          ``,
		"object not array":    `{"error":"script failed"}`,
		"non-string sponsor":  `[{"MalePrincipalSponsor":42}]`,
		"array of non-object": `["Mr. A"]`,
	}
	for name, body := range malformed {
		t.Run("malformed: "+name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			_, err := New(Config{URL: srv.URL}).List(context.Background())
			requireCategory(t, err, CategoryMalformed)
		})
	}

	t.Run("unreachable remote", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(Config{URL: url}).List(context.Background())
		requireCategory(t, err, CategoryUnavailable)
	})

	t.Run("hung remote times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		_, err := New(Config{URL: srv.URL, Timeout: 50 * time.Millisecond}).List(context.Background())
		requireCategory(t, err, CategoryTimeout)
	})

	t.Run("oversized body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"MalePrincipalSponsor":"a long enough name"}]`)
		}))
		defer srv.Close()

		_, err := New(Config{URL: srv.URL, MaxResponseBytes: 16}).List(context.Background())
		requireCategory(t, err, CategoryMalformed)
	})
}

func TestClient_ListCoalescesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		_, _ = io.WriteString(w, `[{"MalePrincipalSponsor":"Mr. A","FemalePrincipalSponsor":"Mrs. A"}]`)
	}))
	defer srv.Close()

	client := New(Config{URL: srv.URL})

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]byte, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = client.List(context.Background())
	}()
	<-started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = client.List(context.Background())
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.JSONEq(t, string(results[0]), string(results[i]))
	}

	// Callers get independent copies.
	results[0][0] = '!'
	assert.Equal(t, byte('['), results[1][0])
}

func TestClient_ListCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{URL: srv.URL}).List(ctx)
	requireCategory(t, err, CategoryUnavailable)
}

func TestClient_Writes(t *testing.T) {
	type captured struct {
		method      string
		contentType string
		body        map[string]any
	}

	newServer := func(t *testing.T, status int, respBody string) (*httptest.Server, *captured) {
		t.Helper()
		c := &captured{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.method = r.Method
			c.contentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&c.body)
			w.WriteHeader(status)
			_, _ = io.WriteString(w, respBody)
		}))
		t.Cleanup(srv.Close)
		return srv, c
	}

	t.Run("create posts the record as JSON", func(t *testing.T) {
		srv, c := newServer(t, http.StatusOK, `{"success":true,"message":"added"}`)

		got, err := New(Config{URL: srv.URL}).Create(context.Background(), models.CreatePayload{
			MalePrincipalSponsor: "John", FemalePrincipalSponsor: "",
		})
		require.NoError(t, err)

		assert.JSONEq(t, `{"success":true,"message":"added"}`, string(got))
		assert.Equal(t, http.MethodPost, c.method)
		assert.Equal(t, "application/json", c.contentType)
		assert.Equal(t, map[string]any{"MalePrincipalSponsor": "John", "FemalePrincipalSponsor": ""}, c.body)
	})

	t.Run("update carries the action and lookup key", func(t *testing.T) {
		srv, c := newServer(t, http.StatusOK, `{"success":true}`)

		_, err := New(Config{URL: srv.URL}).Update(context.Background(), models.UpdatePayload{
			Action: models.ActionUpdate, OriginalName: "Old Name", MalePrincipalSponsor: "New Name",
		})
		require.NoError(t, err)

		assert.Equal(t, "update", c.body["action"])
		assert.Equal(t, "Old Name", c.body["originalName"])
		assert.Equal(t, "New Name", c.body["MalePrincipalSponsor"])
	})

	t.Run("delete carries the action", func(t *testing.T) {
		srv, c := newServer(t, http.StatusOK, `{"success":true}`)

		_, err := New(Config{URL: srv.URL}).Delete(context.Background(), models.DeletePayload{
			Action: models.ActionDelete, MalePrincipalSponsor: "Pedro Santos",
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"action": "delete", "MalePrincipalSponsor": "Pedro Santos"}, c.body)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

		_, err := New(Config{URL: srv.URL}).Create(context.Background(), models.CreatePayload{MalePrincipalSponsor: "John"})
		re := requireCategory(t, err, CategoryBadStatus)
		assert.Equal(t, OperationCreate, re.Operation)
	})

	t.Run("non-JSON success body fails", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `OK`)

		_, err := New(Config{URL: srv.URL}).Delete(context.Background(), models.DeletePayload{Action: models.ActionDelete})
		requireCategory(t, err, CategoryMalformed)
	})

	t.Run("unmarshalable payload fails before calling out", func(t *testing.T) {
		srv, c := newServer(t, http.StatusOK, `{}`)

		_, err := New(Config{URL: srv.URL}).Create(context.Background(), func() {})
		requireCategory(t, err, CategoryBadRequest)
		assert.Empty(t, c.method)
	})

	t.Run("cancelled caller cancels the write", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := New(Config{URL: srv.URL}).Update(ctx, models.UpdatePayload{Action: models.ActionUpdate})
		requireCategory(t, err, CategoryTimeout)
	})
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, Category(""), CategoryOf(nil))
	assert.Equal(t, CategoryUnavailable, CategoryOf(errors.New("dial tcp")))
	wrapped := errors.Join(errors.New("context"), newRemoteError(CategoryMalformed, OperationList, "bad", nil))
	assert.Equal(t, CategoryMalformed, CategoryOf(wrapped))
}
