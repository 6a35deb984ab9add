package config

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/issuepool/issuepool/pkg/domain/types"
	"github.com/issuepool/issuepool/pkg/infra/bq"
)

// BigQuery configures the optional allocation audit export. All three IDs
// must be set to enable it.
type BigQuery struct {
	projectID types.GoogleProjectID
	datasetID types.BQDatasetID
	tableID   types.BQTableID
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "Google Cloud project ID for the audit export (optional)",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("ISSUEPOOL_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID for the audit export",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("ISSUEPOOL_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID for the audit export",
			Category:    "BigQuery",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("ISSUEPOOL_BIGQUERY_TABLE_ID"),
			Value:       "allocations",
		},
	}
}

func (x BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != "" && x.tableID != ""
}

// NewClient returns nil without error when the export is not configured.
func (x BigQuery) NewClient(ctx context.Context) (*bq.Client, error) {
	if !x.Enabled() {
		return nil, nil
	}
	return bq.New(ctx, x.projectID, x.datasetID, x.tableID)
}

func (x BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ProjectID", string(x.projectID)),
		slog.String("DatasetID", string(x.datasetID)),
		slog.String("TableID", string(x.tableID)),
	)
}
