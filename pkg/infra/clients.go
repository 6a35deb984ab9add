package infra

import (
	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/repository/memory"
)

type Clients struct {
	githubClient interfaces.GitHubClient
	chainGateway interfaces.ChainGateway
	rewardRepo   interfaces.RewardRepository
	bqClient     interfaces.BigQuery
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		rewardRepo: memory.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHubClient {
	return x.githubClient
}
func (x *Clients) Chain() interfaces.ChainGateway {
	return x.chainGateway
}
func (x *Clients) RewardRepository() interfaces.RewardRepository {
	return x.rewardRepo
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}

func WithGitHub(client interfaces.GitHubClient) Option {
	return func(x *Clients) {
		x.githubClient = client
	}
}

func WithChain(gateway interfaces.ChainGateway) Option {
	return func(x *Clients) {
		x.chainGateway = gateway
	}
}

func WithRewardRepository(repo interfaces.RewardRepository) Option {
	return func(x *Clients) {
		x.rewardRepo = repo
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}
