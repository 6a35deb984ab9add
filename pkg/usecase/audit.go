package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/issuepool/issuepool/pkg/domain/interfaces"
	"github.com/issuepool/issuepool/pkg/domain/model"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

// exportAllocationAudit streams a confirmed allocation to the audit table.
// The export is best effort: the ledger already holds the durable record, so
// a sink failure is logged and never fails the allocation.
func (x *UseCase) exportAllocationAudit(ctx context.Context, alloc *model.RewardAllocation) {
	bq := x.clients.BigQuery()
	if bq == nil {
		return
	}

	record := &model.AllocationAuditRecord{
		RewardAllocation: *alloc,
		ExportedAt:       x.now().UTC().UnixMicro(),
	}

	schema, err := prepareAuditTable(ctx, bq, record)
	if err != nil {
		logging.From(ctx).Error("Failed to prepare audit table", slog.Any("error", err))
		return
	}

	if err := bq.Insert(ctx, schema, record); err != nil {
		logging.From(ctx).Error("Failed to export allocation audit record",
			slog.String("allocationID", string(alloc.ID)),
			slog.Any("error", err),
		)
	}
}

// prepareAuditTable infers the record schema, creates the table on first
// use, and widens it when the record grows new fields.
func prepareAuditTable(ctx context.Context, bq interfaces.BigQuery, record *model.AllocationAuditRecord) (bigquery.Schema, error) {
	schema, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer audit record schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
			return nil, err
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge audit table schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{Schema: mergedSchema}, metaData.ETag); err != nil {
		return nil, err
	}

	return mergedSchema, nil
}
