package usecase

import (
	"time"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
	limits  *model.LimitConfig

	repoLocks *keyedLock
	now       func() time.Time

	// probeConcurrency bounds the parallel GitHub visibility probes in
	// the batch listing path.
	probeConcurrency int
	// probeRate caps probes per second across one listing call.
	probeRate float64
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

func WithLimits(limits *model.LimitConfig) Option {
	return func(x *UseCase) {
		x.limits = limits
	}
}

func WithProbeConcurrency(n int) Option {
	return func(x *UseCase) {
		x.probeConcurrency = n
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:          clients,
		limits:           model.DefaultLimits(),
		repoLocks:        newKeyedLock(),
		now:              time.Now,
		probeConcurrency: 8,
		probeRate:        10,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}
