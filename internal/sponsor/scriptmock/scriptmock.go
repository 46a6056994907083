// Package scriptmock is an in-memory stand-in for the spreadsheet script that
// backs principal sponsors. It mimics the script's JSON contract so the proxy
// can run locally and in integration tests without the real sheet.
package scriptmock

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"weddingapi/internal/sponsor/models"
)

type writeRequest struct {
	Action                 string `json:"action"`
	OriginalName           string `json:"originalName"`
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

type writeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Store holds the sheet rows. The zero value is not usable; use New.
type Store struct {
	mu         sync.Mutex
	rows       []models.SponsorRecord
	failStatus int
	router     chi.Router
}

// New creates a store seeded with rows.
func New(rows ...models.SponsorRecord) *Store {
	s := &Store{rows: append([]models.SponsorRecord(nil), rows...)}
	r := chi.NewRouter()
	r.Get("/", s.handleList)
	r.Post("/", s.handleWrite)
	s.router = r
	return s
}

func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.failStatus
	s.mu.Unlock()
	if status != 0 {
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	s.router.ServeHTTP(w, r)
}

// Fail makes every request answer with status until Recover is called.
func (s *Store) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

func (s *Store) Recover() {
	s.Fail(0)
}

// Rows returns a copy of the current rows.
func (s *Store) Rows() []models.SponsorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SponsorRecord{}, s.rows...)
}

func (s *Store) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Rows())
}

func (s *Store) handleWrite(w http.ResponseWriter, r *http.Request) {
	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Action {
	case "":
		s.rows = append(s.rows, models.SponsorRecord{
			MalePrincipalSponsor:   req.MalePrincipalSponsor,
			FemalePrincipalSponsor: req.FemalePrincipalSponsor,
		})
		writeJSON(w, http.StatusOK, writeResponse{Success: true, Message: "Principal sponsor added successfully"})
	case models.ActionUpdate:
		i := s.indexOf(req.OriginalName)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Principal sponsor not found"})
			return
		}
		s.rows[i] = models.SponsorRecord{
			MalePrincipalSponsor:   req.MalePrincipalSponsor,
			FemalePrincipalSponsor: req.FemalePrincipalSponsor,
		}
		writeJSON(w, http.StatusOK, writeResponse{Success: true, Message: "Principal sponsor updated successfully"})
	case models.ActionDelete:
		i := s.indexOf(req.MalePrincipalSponsor)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Principal sponsor not found"})
			return
		}
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
		writeJSON(w, http.StatusOK, writeResponse{Success: true, Message: "Principal sponsor deleted successfully"})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown action"})
	}
}

// indexOf finds the first row whose male name equals name. Caller holds mu.
func (s *Store) indexOf(name string) int {
	for i, row := range s.rows {
		if row.MalePrincipalSponsor == name {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
