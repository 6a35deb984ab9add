package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/repository"
)

type rewardRepository struct {
	db *sql.DB
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Registration operations

func (r *rewardRepository) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registrations (repo_id, owner, name, registered_by, installation_id, install_scope, is_private, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, reg.RepoID, reg.Owner, reg.Name, reg.RegisteredBy, reg.InstallationID, reg.InstallScope, reg.IsPrivate, reg.IsActive, reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "registration already exists",
				goerr.V("repoID", reg.RepoID),
			)
		}
		return goerr.Wrap(err, "failed to insert registration", goerr.V("repoID", reg.RepoID))
	}
	return nil
}

func (r *rewardRepository) scanRegistration(row *sql.Row) (*model.Registration, error) {
	var reg model.Registration
	err := row.Scan(&reg.RepoID, &reg.Owner, &reg.Name, &reg.RegisteredBy, &reg.InstallationID, &reg.InstallScope, &reg.IsPrivate, &reg.IsActive, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "registration not found")
		}
		return nil, goerr.Wrap(err, "failed to scan registration")
	}
	return &reg, nil
}

const registrationColumns = `repo_id, owner, name, registered_by, installation_id, install_scope, is_private, is_active, created_at, updated_at`

func (r *rewardRepository) GetRegistration(ctx context.Context, repoID types.GitHubRepoID) (*model.Registration, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations WHERE repo_id = $1
	`, repoID)
	return r.scanRegistration(row)
}

func (r *rewardRepository) GetRegistrationByFullName(ctx context.Context, owner, name string) (*model.Registration, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations WHERE owner = $1 AND name = $2
	`, owner, name)
	return r.scanRegistration(row)
}

func (r *rewardRepository) listRegistrations(ctx context.Context, query string, args ...any) ([]*model.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query registrations")
	}
	defer rows.Close()

	var regs []*model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.RepoID, &reg.Owner, &reg.Name, &reg.RegisteredBy, &reg.InstallationID, &reg.InstallScope, &reg.IsPrivate, &reg.IsActive, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan registration row")
		}
		regs = append(regs, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate registrations")
	}
	return regs, nil
}

func (r *rewardRepository) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	return r.listRegistrations(ctx, `
		SELECT `+registrationColumns+` FROM registrations ORDER BY repo_id
	`)
}

func (r *rewardRepository) ListRegistrationsByUser(ctx context.Context, userID types.UserID) ([]*model.Registration, error) {
	return r.listRegistrations(ctx, `
		SELECT `+registrationColumns+` FROM registrations WHERE registered_by = $1 ORDER BY repo_id
	`, userID)
}

func (r *rewardRepository) UpdateInstallation(ctx context.Context, repoID types.GitHubRepoID, installID types.GitHubAppInstallID, scope types.InstallScope) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE registrations SET installation_id = $2, install_scope = $3, updated_at = now() WHERE repo_id = $1
	`, repoID, installID, scope)
	if err != nil {
		return goerr.Wrap(err, "failed to update installation", goerr.V("repoID", repoID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return goerr.Wrap(repository.ErrNotFound, "registration not found", goerr.V("repoID", repoID))
	}
	return nil
}

func (r *rewardRepository) SetActive(ctx context.Context, repoID types.GitHubRepoID, active bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE registrations SET is_active = $2, updated_at = now() WHERE repo_id = $1
	`, repoID, active)
	if err != nil {
		return goerr.Wrap(err, "failed to update active flag", goerr.V("repoID", repoID))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return goerr.Wrap(repository.ErrNotFound, "registration not found", goerr.V("repoID", repoID))
	}
	return nil
}

// Window operations

// ConsumeWindow performs the check-and-increment in a single statement so
// two concurrent admissions can never both pass a check only one should
// pass. An expired window is reset in the same statement (lazy reset).
func (r *rewardRepository) ConsumeWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount, limit types.Amount, now time.Time) error {
	if amount <= 0 {
		return goerr.Wrap(repository.ErrInvalidInput, "amount must be positive", goerr.V("amount", amount))
	}

	// The source SELECT filters the insert branch: a first admission over
	// the ceiling produces no row at all. The update branch re-checks the
	// ceiling against the (possibly reset) accumulated total.
	cutoff := now.Add(-model.WindowDuration)
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO funding_windows (subject_id, currency, kind, window_start, amount_consumed)
		SELECT $1::text, $2::text, $3::text, $4::timestamptz, $5::bigint WHERE $5 <= $7::bigint
		ON CONFLICT (subject_id, currency, kind) DO UPDATE SET
			window_start = CASE
				WHEN funding_windows.window_start <= $6 THEN $4
				ELSE funding_windows.window_start
			END,
			amount_consumed = CASE
				WHEN funding_windows.window_start <= $6 THEN $5
				ELSE funding_windows.amount_consumed + $5
			END
		WHERE (CASE
			WHEN funding_windows.window_start <= $6 THEN $5
			ELSE funding_windows.amount_consumed + $5
		END) <= $7
	`, subject, currency, kind, now, amount, cutoff, limit)
	if err != nil {
		return goerr.Wrap(err, "failed to consume window",
			goerr.V("subject", subject),
			goerr.V("currency", currency),
			goerr.V("kind", kind),
		)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to read consume result")
	}
	if rows == 0 {
		return goerr.Wrap(repository.ErrLimitExceeded, "admission exceeds window ceiling",
			goerr.V("subject", subject),
			goerr.V("currency", currency),
			goerr.V("kind", kind),
			goerr.V("amount", amount),
			goerr.V("limit", limit),
		)
	}
	return nil
}

func (r *rewardRepository) ReleaseWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind, amount types.Amount) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE funding_windows
		SET amount_consumed = GREATEST(amount_consumed - $4, 0)
		WHERE subject_id = $1 AND currency = $2 AND kind = $3
	`, subject, currency, kind, amount)
	if err != nil {
		return goerr.Wrap(err, "failed to release window",
			goerr.V("subject", subject),
			goerr.V("currency", currency),
			goerr.V("kind", kind),
		)
	}
	return nil
}

func (r *rewardRepository) GetWindow(ctx context.Context, subject types.UserID, currency types.Currency, kind types.WindowKind) (*model.FundingWindow, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT subject_id, currency, kind, window_start, amount_consumed
		FROM funding_windows
		WHERE subject_id = $1 AND currency = $2 AND kind = $3
	`, subject, currency, kind)

	var w model.FundingWindow
	if err := row.Scan(&w.SubjectID, &w.Currency, &w.Kind, &w.WindowStart, &w.AmountConsumed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "window not found")
		}
		return nil, goerr.Wrap(err, "failed to scan window")
	}
	return &w, nil
}

// Allocation operations

func (r *rewardRepository) CreateAllocation(ctx context.Context, alloc *model.RewardAllocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_allocations (id, repo_id, issue_number, currency, amount, recipient, allocated_by, idempotency_key, tx_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, alloc.ID, alloc.RepoID, alloc.Issue, alloc.Currency, alloc.Amount, alloc.Recipient, alloc.AllocatedBy, alloc.Key, alloc.TxHash, alloc.Status, alloc.CreatedAt, alloc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "allocation key already exists",
				goerr.V("key", alloc.Key),
			)
		}
		return goerr.Wrap(err, "failed to insert allocation", goerr.V("key", alloc.Key))
	}
	return nil
}

const allocationColumns = `id, repo_id, issue_number, currency, amount, recipient, allocated_by, idempotency_key, tx_hash, status, created_at, updated_at`

func (r *rewardRepository) listAllocations(ctx context.Context, query string, args ...any) ([]*model.RewardAllocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query allocations")
	}
	defer rows.Close()

	var allocs []*model.RewardAllocation
	for rows.Next() {
		var a model.RewardAllocation
		if err := rows.Scan(&a.ID, &a.RepoID, &a.Issue, &a.Currency, &a.Amount, &a.Recipient, &a.AllocatedBy, &a.Key, &a.TxHash, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan allocation row")
		}
		allocs = append(allocs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate allocations")
	}
	return allocs, nil
}

func (r *rewardRepository) GetAllocationByKey(ctx context.Context, key types.IdempotencyKey) (*model.RewardAllocation, error) {
	allocs, err := r.listAllocations(ctx, `
		SELECT `+allocationColumns+` FROM reward_allocations WHERE idempotency_key = $1
	`, key)
	if err != nil {
		return nil, err
	}
	if len(allocs) == 0 {
		return nil, goerr.Wrap(repository.ErrNotFound, "allocation not found", goerr.V("key", key))
	}
	return allocs[0], nil
}

func (r *rewardRepository) ListAllocations(ctx context.Context, repoID types.GitHubRepoID, issue types.GitHubIssueNumber, currency types.Currency) ([]*model.RewardAllocation, error) {
	return r.listAllocations(ctx, `
		SELECT `+allocationColumns+` FROM reward_allocations
		WHERE repo_id = $1 AND issue_number = $2 AND currency = $3
		ORDER BY created_at DESC
	`, repoID, issue, currency)
}

func (r *rewardRepository) ListPendingAllocations(ctx context.Context) ([]*model.RewardAllocation, error) {
	return r.listAllocations(ctx, `
		SELECT `+allocationColumns+` FROM reward_allocations
		WHERE status = $1
		ORDER BY created_at
	`, types.AllocationPending)
}

func (r *rewardRepository) UpdateAllocationStatus(ctx context.Context, id types.AllocationID, status types.AllocationStatus, hash types.TxHash) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reward_allocations
		SET status = $2,
			tx_hash = CASE WHEN $3 = '' THEN tx_hash ELSE $3 END,
			updated_at = now()
		WHERE id = $1
	`, id, status, hash)
	if err != nil {
		return goerr.Wrap(err, "failed to update allocation status", goerr.V("id", id))
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return goerr.Wrap(repository.ErrNotFound, "allocation not found", goerr.V("id", id))
	}
	return nil
}
