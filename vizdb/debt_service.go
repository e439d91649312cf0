package vizdb

import (
	"context"
	"fmt"

	"lebstories.aub.edu.lb/internal/logging"
)

// ReplaceDebtService replaces the stored debt service series with the given
// records inside a single transaction, so readers never observe a partially
// loaded series.
func (c *Client) ReplaceDebtService(ctx context.Context, payments []DebtServicePayment) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logging.FromContext(ctx), "replace_debt_service")

	if _, err := tx.ExecContext(ctx, `DELETE FROM debt_service`); err != nil {
		return fmt.Errorf("error clearing debt_service: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO debt_service (year, amount) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing debt_service insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, p := range payments {
		if _, err := stmt.ExecContext(ctx, p.Year, p.Amount); err != nil {
			return fmt.Errorf("error inserting debt_service year %d: %w", p.Year, err)
		}
	}

	return tx.Commit()
}

// ListDebtService retrieves debt service payments with years in [from, to],
// ordered by year ascending.
func (q *Queries) ListDebtService(ctx context.Context, from, to int) ([]DebtServicePayment, error) {
	rows, err := q.db.QueryContext(
		ctx,
		`SELECT year, amount FROM debt_service WHERE year >= ? AND year <= ? ORDER BY year`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var payments []DebtServicePayment
	for rows.Next() {
		var p DebtServicePayment
		if err := rows.Scan(&p.Year, &p.Amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// CountDebtService returns the number of stored debt service records.
func (q *Queries) CountDebtService(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM debt_service`).Scan(&count)
	return count, err
}
