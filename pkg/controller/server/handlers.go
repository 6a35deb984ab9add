package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
	"github.com/issuepool/issuepool/pkg/utils/errutil"
)

// principalFromRequest builds the requesting identity from the trusted
// gateway headers. The bearer token is the user's GitHub OAuth token, used
// only for owner-wide installation lookups.
func principalFromRequest(r *http.Request) model.Principal {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == r.Header.Get("Authorization") {
		token = ""
	}

	return model.Principal{
		UserID: types.UserID(r.Header.Get("X-GitHub-User")),
		Login:  r.Header.Get("X-GitHub-Login"),
		Token:  types.GitHubUserToken(token),
	}
}

func repoIDParam(r *http.Request) (types.GitHubRepoID, error) {
	raw := chi.URLParam(r, "repoID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("repoID must be a positive integer")
	}
	return types.GitHubRepoID(id), nil
}

func issueParam(r *http.Request) (types.GitHubIssueNumber, error) {
	raw := chi.URLParam(r, "issue")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("issue must be a positive integer")
	}
	return types.GitHubIssueNumber(n), nil
}

type registerRepoRequest struct {
	FullName       string `json:"full_name"`
	InstallationID int64  `json:"installation_id,omitempty"`
}

type registrationResponse struct {
	RepoID         int64  `json:"repo_id"`
	FullName       string `json:"full_name"`
	InstallationID int64  `json:"installation_id"`
	InstallScope   string `json:"install_scope"`
	IsPrivate      bool   `json:"is_private"`
	IsActive       bool   `json:"is_active"`
}

func toRegistrationResponse(reg *model.Registration) registrationResponse {
	return registrationResponse{
		RepoID:         int64(reg.RepoID),
		FullName:       reg.FullName(),
		InstallationID: int64(reg.InstallationID),
		InstallScope:   string(reg.InstallScope),
		IsPrivate:      reg.IsPrivate,
		IsActive:       reg.IsActive,
	}
}

func handleRegisterRepo(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRepoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		reg, err := uc.RegisterRepository(r.Context(), &model.RegisterRepositoryInput{
			Principal:     principalFromRequest(r),
			FullName:      req.FullName,
			InstallIDHint: types.GitHubAppInstallID(req.InstallationID),
		})
		if err != nil {
			respondError(w, r, "fail to register repository", err)
			return
		}

		respondJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

func handleListRepos(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, diags, err := uc.ListAccessibleRepositories(r.Context(), principalFromRequest(r))
		if err != nil {
			respondError(w, r, "fail to list repositories", err)
			return
		}

		repos := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			repos = append(repos, toRegistrationResponse(reg))
		}

		type diagnostic struct {
			RepoID   int64  `json:"repo_id"`
			FullName string `json:"full_name"`
			Reason   string `json:"reason"`
		}
		excluded := make([]diagnostic, 0, len(diags))
		for _, d := range diags {
			excluded = append(excluded, diagnostic{
				RepoID:   int64(d.RepoID),
				FullName: d.FullName,
				Reason:   d.Reason,
			})
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"repositories": repos,
			"excluded":     excluded,
		})
	}
}

type fundRepoRequest struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Nonce    string `json:"nonce,omitempty"`
}

type txRefResponse struct {
	Hash      string `json:"hash"`
	Confirmed bool   `json:"confirmed"`
}

func handleFundRepo(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repoID, err := repoIDParam(r)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		var req fundRepoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		ref, err := uc.FundRepository(r.Context(), &model.FundRepositoryInput{
			Principal: principalFromRequest(r),
			RepoID:    repoID,
			Currency:  types.Currency(req.Currency),
			Amount:    types.Amount(req.Amount),
			Nonce:     req.Nonce,
		})
		if err != nil {
			respondError(w, r, "fail to fund repository", err)
			return
		}

		respondJSON(w, txStatusCode(ref), txRefResponse{Hash: string(ref.Hash), Confirmed: ref.Confirmed})
	}
}

type allocateRewardRequest struct {
	Currency  string `json:"currency"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
}

func handleAllocateReward(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repoID, err := repoIDParam(r)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		issue, err := issueParam(r)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		var req allocateRewardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		ref, err := uc.AllocateReward(r.Context(), &model.AllocateRewardInput{
			Principal: principalFromRequest(r),
			RepoID:    repoID,
			Issue:     issue,
			Currency:  types.Currency(req.Currency),
			Amount:    types.Amount(req.Amount),
			Recipient: types.WalletAddress(req.Recipient),
		})
		if err != nil {
			respondError(w, r, "fail to allocate reward", err)
			return
		}

		respondJSON(w, txStatusCode(ref), txRefResponse{Hash: string(ref.Hash), Confirmed: ref.Confirmed})
	}
}

// txStatusCode distinguishes a confirmed result from one still awaiting the
// chain, which is accepted but not done.
func txStatusCode(ref *model.TxRef) int {
	if ref.Confirmed {
		return http.StatusOK
	}
	return http.StatusAccepted
}

func respondError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	errutil.HandleError(r.Context(), msg, err)

	body := map[string]any{"error": err.Error()}
	if url, ok := errValue(err, "install_url"); ok {
		body["install_url"] = url
	}

	respondJSON(w, errStatusCode(err), body)
}

// errValue digs a structured value out of the error chain, if present.
func errValue(err error, key string) (any, bool) {
	goErr := goerr.Unwrap(err)
	if goErr == nil {
		return nil, false
	}
	v, ok := goErr.Values()[key]
	return v, ok
}

func errStatusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrValidationFailed), errors.Is(err, types.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, types.ErrNotInstalled):
		return http.StatusPreconditionFailed
	case errors.Is(err, types.ErrLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, types.ErrRateLimited), errors.Is(err, types.ErrTransient), errors.Is(err, types.ErrChainPending):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrChainRejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
