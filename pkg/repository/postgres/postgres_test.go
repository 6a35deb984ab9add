package postgres_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/repository/postgres"
	"github.com/issuepool/issuepool/pkg/repository/testhelper"
	"github.com/issuepool/issuepool/pkg/utils/safe"
	"github.com/issuepool/issuepool/pkg/utils/testutil"
)

func TestPostgresRewardRepository(t *testing.T) {
	dsn := testutil.GetEnvOrSkip(t, "TEST_POSTGRES_DSN")

	gt.NoError(t, postgres.Migrate(dsn))

	repo, db, err := postgres.New(dsn)
	gt.NoError(t, err)
	defer safe.Close(db)

	testhelper.TestAll(t, repo)
}
