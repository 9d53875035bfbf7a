package adapthttp

import (
	"context"
	"net/http"

	"github.com/Samandarcodee/Yurlo-sub000/internal/app"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// handleWrite decodes a body of type T and passes it to fn for the
// authenticated user.
func handleWrite[T any](fn func(context.Context, int64, T) (*domain.DailyRecord, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body T
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rec, err := fn(r.Context(), userFromContext(r).ID, body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": rec})
	}
}

func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	handleWrite[app.SleepInput](s.svc.Logs.RecordSleep)(w, r)
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	handleWrite[app.StepsInput](s.svc.Logs.RecordSteps)(w, r)
}

func (s *Server) handleWaterEntry(w http.ResponseWriter, r *http.Request) {
	handleWrite[app.WaterInput](s.svc.Logs.AddWater)(w, r)
}

func (s *Server) handleWorkoutSession(w http.ResponseWriter, r *http.Request) {
	handleWrite[app.WorkoutInput](s.svc.Logs.AddWorkout)(w, r)
}

func (s *Server) handleMealItem(w http.ResponseWriter, r *http.Request) {
	handleWrite[app.MealInput](s.svc.Logs.AddMealItem)(w, r)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d, err := domainQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	days := intQuery(r, "days", 30)
	recs, err := s.svc.Logs.Records(r.Context(), userFromContext(r).ID, d, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.DailyRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"domain": d, "days": days, "items": recs})
}
