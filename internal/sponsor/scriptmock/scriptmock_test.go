package scriptmock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingapi/internal/sponsor/models"
)

func post(t *testing.T, s *Store, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestStore_List(t *testing.T) {
	s := New(models.SponsorRecord{MalePrincipalSponsor: "Mr. A", FemalePrincipalSponsor: "Mrs. A"})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"MalePrincipalSponsor":"Mr. A","FemalePrincipalSponsor":"Mrs. A"}]`, rec.Body.String())
}

func TestStore_EmptyListIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	New().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestStore_Writes(t *testing.T) {
	s := New()

	rec := post(t, s, `{"MalePrincipalSponsor":"John","FemalePrincipalSponsor":"Jane"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp writeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	rec = post(t, s, `{"action":"update","originalName":"John","MalePrincipalSponsor":"Johnny","FemalePrincipalSponsor":"Jane"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []models.SponsorRecord{{MalePrincipalSponsor: "Johnny", FemalePrincipalSponsor: "Jane"}}, s.Rows())

	rec = post(t, s, `{"action":"update","originalName":"Nobody","MalePrincipalSponsor":"X"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Principal sponsor not found"}`, rec.Body.String())

	rec = post(t, s, `{"action":"delete","MalePrincipalSponsor":"Johnny"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.Rows())

	rec = post(t, s, `{"action":"delete","MalePrincipalSponsor":"Johnny"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStore_BadRequests(t *testing.T) {
	s := New()
	assert.Equal(t, http.StatusBadRequest, post(t, s, `nope`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, s, `{"action":"archive"}`).Code)
}

func TestStore_Fail(t *testing.T) {
	s := New()
	s.Fail(http.StatusServiceUnavailable)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.Recover()
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
