package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	// ErrNotInstalled means the platform app is not installed anywhere that
	// covers the repository. The wrapping error carries "install_url" so the
	// caller can complete installation out-of-band.
	ErrNotInstalled = goerr.New("app not installed for repository")

	// ErrNotAuthorized means the principal may not act on the repository.
	// Not retryable without a privilege change.
	ErrNotAuthorized = goerr.New("not authorized")

	// ErrAlreadyRegistered means a registration row already exists for the
	// repository.
	ErrAlreadyRegistered = goerr.New("repository already registered")

	// ErrLimitExceeded means a rolling-window ceiling would be breached.
	// Retryable after the window resets.
	ErrLimitExceeded = goerr.New("daily limit exceeded")

	// ErrTransient marks a GitHub or chain failure that the caller may retry
	// with backoff. It is never silently treated as a denial outside the
	// fail-closed visibility path.
	ErrTransient = goerr.New("transient upstream failure")

	// ErrRateLimited is a transient failure caused by GitHub rate-limit
	// exhaustion. The wrapping error carries "retry_after".
	ErrRateLimited = goerr.New("github rate limit exhausted")

	// ErrChainRejected means the chain refused the operation. Terminal for
	// the idempotency key; retry requires a fresh key.
	ErrChainRejected = goerr.New("chain rejected operation")

	// ErrChainPending means the transaction was submitted but its outcome is
	// unknown. It must be polled, never retried blindly.
	ErrChainPending = goerr.New("chain operation pending")

	// ErrInconsistent means the store and the chain disagree after
	// reconciliation. Surfaced for operator review, never auto-resolved.
	ErrInconsistent = goerr.New("store and chain are inconsistent")
)
