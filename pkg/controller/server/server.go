package server

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/utils/errutil"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func respondJSON(w http.ResponseWriter, code int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, data)
}

type config struct {
	webhookSecret types.GitHubAppSecret
}

type Option func(*config)

func WithWebhookSecret(secret types.GitHubAppSecret) Option {
	return func(cfg *config) {
		cfg.webhookSecret = secret
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/repos", handleRegisterRepo(uc))
		r.Get("/repos", handleListRepos(uc))
		r.Post("/repos/{repoID}/fund", handleFundRepo(uc))
		r.Post("/repos/{repoID}/issues/{issue}/rewards", handleAllocateReward(uc))
	})

	r.Route("/webhook", func(r chi.Router) {
		r.Route("/github", func(r chi.Router) {
			r.Post("/app", func(w http.ResponseWriter, r *http.Request) {
				change, err := validateGitHubAppEvent(r, cfg.webhookSecret)
				if err != nil {
					errutil.HandleError(r.Context(), "fail to validate GitHub App event", err)
					safeWrite(w, http.StatusBadRequest, []byte(err.Error()))
					return
				}

				if change == nil {
					safeWrite(w, http.StatusOK, []byte(`{"status":"ok","message":"no action required"}`))
					return
				}

				// The request context dies with the response; detach
				// before handing off to the background worker.
				bgCtx := DetachContext(r.Context())
				go runInstallationChange(bgCtx, uc, change)

				safeWrite(w, http.StatusAccepted, []byte(`{"status":"accepted","message":"installation change enqueued"}`))
			})
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
