package vizdb

import (
	"context"
	"fmt"
)

// RecordLoad appends a bookkeeping row describing one dataset load.
func (c *Client) RecordLoad(ctx context.Context, load DatasetLoad) error {
	_, err := c.DB.ExecContext(ctx, `
		INSERT INTO dataset_loads (
			dataset_id, source, status, record_count, skipped_rows, loaded_at
		) VALUES (?, ?, ?, ?, ?, ?);
	`,
		load.DatasetID, load.Source, load.Status, load.RecordCount, load.SkippedRows, load.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("error recording dataset load: %w", err)
	}
	return nil
}

// LatestLoad retrieves the most recent load record for the given dataset.
func (q *Queries) LatestLoad(ctx context.Context, datasetID string) (DatasetLoad, error) {
	var load DatasetLoad
	err := q.db.QueryRowContext(ctx, `
		SELECT dataset_id, source, status, record_count, skipped_rows, loaded_at
		FROM dataset_loads WHERE dataset_id = ?
		ORDER BY loaded_at DESC LIMIT 1`,
		datasetID,
	).Scan(&load.DatasetID, &load.Source, &load.Status, &load.RecordCount, &load.SkippedRows, &load.LoadedAt)
	return load, err
}
