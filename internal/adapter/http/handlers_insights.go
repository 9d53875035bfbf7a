package adapthttp

import (
	"net/http"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	d, err := domainQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := s.svc.Insights.Compute(r.Context(), userFromContext(r).ID, d)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sum, err := s.svc.Insights.Weekly(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
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
	points, err := s.svc.History.Daily(r.Context(), userFromContext(r).ID, d, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"domain": d,
		"days":   len(points),
		"items":  points,
	})
}

func (s *Server) handleNutritionToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.svc.Nutrition.Day(r.Context(), userFromContext(r).ID, r.URL.Query().Get("day"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	list, err := s.svc.Achievements.List(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAchievementsCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	unlocked, err := s.svc.Achievements.Check(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unlocked": unlocked})
}
