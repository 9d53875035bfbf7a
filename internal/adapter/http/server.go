package adapthttp

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/Samandarcodee/Yurlo-sub000/internal/app"
	"github.com/Samandarcodee/Yurlo-sub000/internal/config"
)

// localUser is the account every request runs as when auth is disabled.
const localUser = "local"

// Services groups the application services the adapter drives.
type Services struct {
	Auth         *app.AuthService
	Profiles     *app.ProfileService
	Goals        *app.GoalService
	Logs         *app.LogService
	Insights     *app.InsightsService
	History      *app.HistoryService
	Nutrition    *app.NutritionService
	Achievements *app.AchievementService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc         Services
	oidcConfig  config.SSO
	webDir      string
	logger      *log.Logger
	disableAuth bool
	forwardAuth bool
}

// New creates a Server wired to the given application services.
func New(svc Services, sso config.SSO, webDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, oidcConfig: sso, webDir: webDir, logger: logger}
}

// WithoutAuth serves every request as a single local user.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithForwardAuth trusts the Remote-User header set by an authenticating
// reverse proxy. Only enable it when the proxy strips client-supplied copies.
func (s *Server) WithForwardAuth() *Server {
	s.forwardAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.Handle("/profile", s.protect(s.handleProfile))
	api.Handle("/profile/metrics", s.protect(s.handleProfileMetrics))
	api.Handle("/goals", s.protect(s.handleGoals))

	api.Handle("/sleep", s.protect(s.handleSleep))
	api.Handle("/steps", s.protect(s.handleSteps))
	api.Handle("/water/entry", s.protect(s.handleWaterEntry))
	api.Handle("/workouts/session", s.protect(s.handleWorkoutSession))
	api.Handle("/meals/item", s.protect(s.handleMealItem))
	api.Handle("/records", s.protect(s.handleRecords))

	api.Handle("/history", s.protect(s.handleHistory))
	api.Handle("/insights", s.protect(s.handleInsights))
	api.Handle("/insights/weekly", s.protect(s.handleWeekly))
	api.Handle("/nutrition/today", s.protect(s.handleNutritionToday))
	api.Handle("/achievements", s.protect(s.handleAchievements))
	api.Handle("/achievements/check", s.protect(s.handleAchievementsCheck))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

func (s *Server) protect(h http.HandlerFunc) http.Handler {
	return s.authMiddleware(h)
}
