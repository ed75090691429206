package services

import (
	"net/http"
	"strconv"

	"sessiond/internal/activity"
	apierrors "sessiond/internal/errors"
	"sessiond/internal/helpers"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// JournalService serves the action history: which actions ran and when. Only
// mounted when the journal is enabled.
type JournalService struct {
	Journal activity.IJournal
}

func (s JournalService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.Search)
	r.Get("/daily", s.CountByDay)
	return r
}

// Search filters by exact action name when ?action= is given, newest first.
func (s JournalService) Search(w http.ResponseWriter, r *http.Request) {
	criteria := map[string][]string{}
	if actions := r.URL.Query()["action"]; len(actions) > 0 {
		criteria["action"] = actions
	}

	entries, err := s.Journal.Search(criteria)
	if err != nil {
		zap.L().Error("Journal search failed", zap.Error(err))
		helpers.RespondWithError(w, 500, []string{apierrors.ErrInternal})
		return
	}

	helpers.RespondWithJSON(w, 200, entries)
}

func (s JournalService) CountByDay(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 90 {
			helpers.RespondWithError(w, 400, []string{apierrors.ErrValidationFailed})
			return
		}
		days = parsed
	}

	criteria := map[string][]string{}
	if actions := r.URL.Query()["action"]; len(actions) > 0 {
		criteria["action"] = actions
	}

	points, err := s.Journal.CountByDay(criteria, days)
	if err != nil {
		zap.L().Error("Journal aggregation failed", zap.Error(err))
		helpers.RespondWithError(w, 500, []string{apierrors.ErrInternal})
		return
	}

	helpers.RespondWithJSON(w, 200, points)
}
