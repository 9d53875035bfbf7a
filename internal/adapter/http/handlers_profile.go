package adapthttp

import (
	"fmt"
	"net/http"

	"github.com/Samandarcodee/Yurlo-sub000/internal/app"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	switch r.Method {
	case http.MethodGet:
		p, err := s.svc.Profiles.Get(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": p})
	case http.MethodPut:
		var body app.ProfileInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.svc.Profiles.Update(r.Context(), user.ID, body)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": p})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleProfileMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	m, err := s.svc.Profiles.Metrics(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	// The section is checked before any write so a bad query never leaves a
	// saved patch behind a 400.
	var section domain.Domain
	if r.URL.Query().Get("domain") != "" {
		d, err := goalDomain(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		section = d
	}

	var (
		goals domain.Goals
		err   error
	)
	switch r.Method {
	case http.MethodGet:
		goals, err = s.svc.Goals.Get(r.Context(), user.ID)
	case http.MethodPut:
		var patch app.GoalsPatch
		if err := parseJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		goals, err = s.svc.Goals.Update(r.Context(), user.ID, patch)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if section == "" {
		writeJSON(w, http.StatusOK, goals)
		return
	}
	writeJSON(w, http.StatusOK, goalSection(goals, section))
}

// goalDomain parses ?domain= and rejects domains without goals.
func goalDomain(r *http.Request) (domain.Domain, error) {
	d, err := domainQuery(r)
	if err != nil {
		return "", err
	}
	switch d {
	case domain.DomainSleep, domain.DomainSteps, domain.DomainWater, domain.DomainWorkout:
		return d, nil
	}
	return "", fmt.Errorf("no goals for domain %q", d)
}

func goalSection(g domain.Goals, d domain.Domain) any {
	switch d {
	case domain.DomainSleep:
		return g.Sleep
	case domain.DomainSteps:
		return g.Steps
	case domain.DomainWater:
		return g.Water
	default:
		return g.Workout
	}
}
