package server_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/controller/server"
	"github.com/issuepool/issuepool/pkg/domain/mock"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
)

func serveJSON(t *testing.T, srv *server.Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data := gt.R1(json.Marshal(body)).NoError(t)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func userHeaders() map[string]string {
	return map[string]string{
		"X-GitHub-User":  "u-100",
		"X-GitHub-Login": "alice",
		"Authorization":  "Bearer gho_dummy",
	}
}

func TestHealth(t *testing.T) {
	srv := server.New(&mock.UseCaseMock{})

	rec := serveJSON(t, srv, http.MethodGet, "/health", nil, nil)
	gt.V(t, rec.Code).Equal(http.StatusOK)
	gt.V(t, rec.Body.String()).Equal("ok")
}

func TestRegisterRepo(t *testing.T) {
	t.Run("returns 201 with the registration", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			RegisterRepositoryFunc: func(ctx context.Context, input *model.RegisterRepositoryInput) (*model.Registration, error) {
				gt.V(t, input.FullName).Equal("acme/widgets")
				gt.V(t, input.Principal.UserID).Equal(types.UserID("u-100"))
				gt.V(t, input.Principal.Token).Equal(types.GitHubUserToken("gho_dummy"))
				gt.V(t, input.InstallIDHint).Equal(types.GitHubAppInstallID(42))
				return &model.Registration{
					RepoID:         100,
					Owner:          "acme",
					Name:           "widgets",
					InstallationID: 42,
					InstallScope:   types.ScopeRepo,
					IsActive:       true,
				}, nil
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos", map[string]any{
			"full_name":       "acme/widgets",
			"installation_id": 42,
		}, userHeaders())

		gt.V(t, rec.Code).Equal(http.StatusCreated)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp["full_name"]).Equal("acme/widgets")
		gt.V(t, resp["is_active"]).Equal(true)
	})

	t.Run("missing installation maps to 412 with install URL", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			RegisterRepositoryFunc: func(ctx context.Context, input *model.RegisterRepositoryInput) (*model.Registration, error) {
				return nil, goerr.Wrap(types.ErrNotInstalled, "app not installed",
					goerr.V("install_url", "https://github.com/apps/issuepool/installations/new"),
				)
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos", map[string]any{
			"full_name": "acme/widgets",
		}, userHeaders())

		gt.V(t, rec.Code).Equal(http.StatusPreconditionFailed)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp["install_url"]).Equal("https://github.com/apps/issuepool/installations/new")
	})

	t.Run("duplicate registration maps to 409", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			RegisterRepositoryFunc: func(ctx context.Context, input *model.RegisterRepositoryInput) (*model.Registration, error) {
				return nil, goerr.Wrap(types.ErrAlreadyRegistered, "already registered")
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos", map[string]any{
			"full_name": "acme/widgets",
		}, userHeaders())
		gt.V(t, rec.Code).Equal(http.StatusConflict)
	})
}

func TestListRepos(t *testing.T) {
	mockUC := &mock.UseCaseMock{
		ListAccessibleRepositoriesFunc: func(ctx context.Context, principal model.Principal) ([]*model.Registration, []model.RepoDiagnostic, error) {
			return []*model.Registration{
					{RepoID: 1, Owner: "acme", Name: "widgets", IsActive: true},
				}, []model.RepoDiagnostic{
					{RepoID: 2, FullName: "acme/broken", Reason: "visibility probe failed"},
				}, nil
		},
	}
	srv := server.New(mockUC)

	rec := serveJSON(t, srv, http.MethodGet, "/api/v1/repos", nil, userHeaders())
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Repositories []struct {
			FullName string `json:"full_name"`
		} `json:"repositories"`
		Excluded []struct {
			FullName string `json:"full_name"`
			Reason   string `json:"reason"`
		} `json:"excluded"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.A(t, resp.Repositories).Length(1)
	gt.V(t, resp.Repositories[0].FullName).Equal("acme/widgets")
	gt.A(t, resp.Excluded).Length(1)
	gt.V(t, resp.Excluded[0].Reason).Equal("visibility probe failed")
}

func TestFundRepo(t *testing.T) {
	t.Run("confirmed funding returns 200", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			FundRepositoryFunc: func(ctx context.Context, input *model.FundRepositoryInput) (*model.TxRef, error) {
				gt.V(t, input.RepoID).Equal(types.GitHubRepoID(100))
				gt.V(t, input.Currency).Equal(types.CurrencyGAS)
				gt.V(t, input.Amount).Equal(types.Amount(50))
				return &model.TxRef{Hash: "0xfund", Confirmed: true}, nil
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos/100/fund", map[string]any{
			"currency": "GAS",
			"amount":   50,
		}, userHeaders())

		gt.V(t, rec.Code).Equal(http.StatusOK)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp["hash"]).Equal("0xfund")
		gt.V(t, resp["confirmed"]).Equal(true)
	})

	t.Run("window ceiling maps to 429", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			FundRepositoryFunc: func(ctx context.Context, input *model.FundRepositoryInput) (*model.TxRef, error) {
				return nil, goerr.Wrap(types.ErrLimitExceeded, "funding window exhausted")
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos/100/fund", map[string]any{
			"currency": "GAS",
			"amount":   50,
		}, userHeaders())
		gt.V(t, rec.Code).Equal(http.StatusTooManyRequests)
	})

	t.Run("non-numeric repo ID is a bad request", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{})
		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos/banana/fund", map[string]any{
			"currency": "GAS",
			"amount":   50,
		}, userHeaders())
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestAllocateReward(t *testing.T) {
	t.Run("pending allocation returns 202", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			AllocateRewardFunc: func(ctx context.Context, input *model.AllocateRewardInput) (*model.TxRef, error) {
				gt.V(t, input.Issue).Equal(types.GitHubIssueNumber(7))
				gt.V(t, input.Recipient).Equal(types.WalletAddress("NWalletAddr1"))
				return &model.TxRef{Hash: "0xalloc", Confirmed: false}, nil
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos/100/issues/7/rewards", map[string]any{
			"currency":  "GAS",
			"amount":    25,
			"recipient": "NWalletAddr1",
		}, userHeaders())

		gt.V(t, rec.Code).Equal(http.StatusAccepted)

		var resp map[string]any
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.V(t, resp["confirmed"]).Equal(false)
	})

	t.Run("chain rejection maps to 502", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			AllocateRewardFunc: func(ctx context.Context, input *model.AllocateRewardInput) (*model.TxRef, error) {
				return nil, goerr.Wrap(types.ErrChainRejected, "pool refused allocation")
			},
		}
		srv := server.New(mockUC)

		rec := serveJSON(t, srv, http.MethodPost, "/api/v1/repos/100/issues/7/rewards", map[string]any{
			"currency":  "GAS",
			"amount":    25,
			"recipient": "NWalletAddr1",
		}, userHeaders())
		gt.V(t, rec.Code).Equal(http.StatusBadGateway)
	})
}

func signPayload(secret types.GitHubAppSecret, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestGitHubAppWebhook(t *testing.T) {
	const secret = types.GitHubAppSecret("test-secret")

	t.Run("bad signature is rejected", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{}, server.WithWebhookSecret(secret))

		payload := []byte(`{"action":"deleted","installation":{"id":10}}`)
		req := httptest.NewRequest(http.MethodPost, "/webhook/github/app", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", "installation")
		req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)
		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("installation removal is applied in the background", func(t *testing.T) {
		done := make(chan struct{})
		mockUC := &mock.UseCaseMock{
			HandleInstallationChangeFunc: func(ctx context.Context, installID types.GitHubAppInstallID, removed bool) error {
				gt.V(t, installID).Equal(types.GitHubAppInstallID(10))
				gt.True(t, removed)
				close(done)
				return nil
			},
		}
		srv := server.New(mockUC, server.WithWebhookSecret(secret))

		payload := []byte(`{"action":"deleted","installation":{"id":10}}`)
		req := httptest.NewRequest(http.MethodPost, "/webhook/github/app", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", "installation")
		req.Header.Set("X-Hub-Signature-256", signPayload(secret, payload))
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)
		gt.V(t, rec.Code).Equal(http.StatusAccepted)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("installation change was not applied")
		}
	})

	t.Run("unrelated event needs no action", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{}, server.WithWebhookSecret(secret))

		payload := []byte(`{"zen":"Design for failure."}`)
		req := httptest.NewRequest(http.MethodPost, "/webhook/github/app", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-GitHub-Event", "ping")
		req.Header.Set("X-Hub-Signature-256", signPayload(secret, payload))
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)
		gt.V(t, rec.Code).Equal(http.StatusOK)
	})
}
