package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vukan322/ghrecap/internal/providers/github"
	"github.com/vukan322/ghrecap/internal/recap"
)

type recapRequest struct {
	Username          string `json:"username"`
	Year              *int   `json:"year"`
	Token             string `json:"token"`
	IncludeComparison *bool  `json:"includeComparison"`
}

// ValidateYear accepts the all-time sentinel (0) or a calendar year between
// GitHub's launch and a distant upper bound.
func ValidateYear(year int) bool {
	return year == 0 || (year >= 2008 && year <= 2100)
}

func (s *Server) handleRecap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body recapRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	username := strings.TrimSpace(body.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	year := time.Now().Year()
	if body.Year != nil {
		year = *body.Year
	}
	if !ValidateYear(year) {
		writeError(w, http.StatusBadRequest, "year must be 0 (all time) or between 2008 and 2100")
		return
	}

	includeComparison := true
	if body.IncludeComparison != nil {
		includeComparison = *body.IncludeComparison
	}

	s.log.WithField("user", username).Infof("recap requested for year %d", year)

	resp, err := s.service.GetRecap(r.Context(), recap.Request{
		Username:          username,
		Year:              year,
		Token:             strings.TrimSpace(body.Token),
		IncludeComparison: includeComparison,
	})
	if err != nil {
		s.log.Errorf("recap failed: %v", err)

		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			if rateErr.RetryAfter > 0 {
				seconds := int(math.Ceil(rateErr.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
			}
			writeError(w, http.StatusTooManyRequests, rateErr.Message)
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
