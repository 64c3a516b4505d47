package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accessflow/accessflow/internal/approval"
	"github.com/accessflow/accessflow/internal/observability"
	"github.com/accessflow/accessflow/internal/platform/httpx"
	"github.com/accessflow/accessflow/internal/request"
	"github.com/accessflow/accessflow/internal/roleselect"
	"github.com/accessflow/accessflow/internal/shared"
	"github.com/accessflow/accessflow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	CSRFManager       *shared.CSRFManager
	RequestHandler    *request.Handler
	RoleSelectHandler *roleselect.Handler
	ApprovalHandler   *approval.Handler
	JobsHandler       *jobs.Handler
	Pool              *pgxpool.Pool
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if params.Pool != nil {
			if err := params.Pool.Ping(req.Context()); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/session", func(r chi.Router) {
		r.Post("/identify", handleIdentify(params))
		r.Post("/test-mode", handleTestMode(params))
		r.Get("/whoami", handleWhoAmI(params))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.RequestHandler.MountRoutes(r)
		params.RoleSelectHandler.MountRoutes(r)
		params.ApprovalHandler.MountRoutes(r)
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

type identifyPayload struct {
	Name string `json:"name"`
}

// handleIdentify records the caller's self-reported display name on the
// session. There is no authentication in this system; the name tags audit
// entries and defaults the completed-by field.
func handleIdentify(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil {
			httpx.Problem(w, http.StatusForbidden, "Session Missing", "no session loaded for this request")
			return
		}
		var payload identifyPayload
		if err := httpx.DecodeJSON(r, &payload); err != nil {
			httpx.RespondError(w, err)
			return
		}
		if payload.Name == "" {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "name is required")
			return
		}
		sess.SetIdentity(payload.Name)
		httpx.JSON(w, http.StatusOK, map[string]string{"identity": payload.Name})
	}
}

type testModePayload struct {
	Enabled bool `json:"enabled"`
}

// handleTestMode toggles the session's test-mode flag. Refused entirely
// unless the deployment enables auto-approve conveniences.
func handleTestMode(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if params.Config == nil || !params.Config.AutoApproveEnabled {
			httpx.Problem(w, http.StatusForbidden, "Test Mode Disabled", "test mode is not available in this deployment")
			return
		}
		sess := shared.SessionFromContext(r.Context())
		if sess == nil {
			httpx.Problem(w, http.StatusForbidden, "Session Missing", "no session loaded for this request")
			return
		}
		var payload testModePayload
		if err := httpx.DecodeJSON(r, &payload); err != nil {
			httpx.RespondError(w, err)
			return
		}
		sess.SetTestMode(payload.Enabled)
		httpx.JSON(w, http.StatusOK, map[string]bool{"test_mode": payload.Enabled})
	}
}

func handleWhoAmI(params RouterParams) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil {
			httpx.JSON(w, http.StatusOK, map[string]any{"identity": "", "test_mode": false})
			return
		}
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			params.Logger.Error("ensure csrf token", slog.Any("error", err))
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"identity":   sess.Identity(),
			"test_mode":  sess.TestMode(),
			"csrf_token": token,
		})
	}
}
