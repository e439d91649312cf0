package vizdb

import (
	"context"
	"fmt"
	"strings"

	"lebstories.aub.edu.lb/internal/logging"
)

// ReplaceHepatitisCases replaces the stored monthly case counts with the
// given records inside a single transaction.
func (c *Client) ReplaceHepatitisCases(ctx context.Context, months []HepatitisMonth) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logging.FromContext(ctx), "replace_hepatitis_cases")

	if _, err := tx.ExecContext(ctx, `DELETE FROM hepatitis_cases`); err != nil {
		return fmt.Errorf("error clearing hepatitis_cases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO hepatitis_cases (year, month, case_count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing hepatitis_cases insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, m := range months {
		if _, err := stmt.ExecContext(ctx, m.Year, m.Month, m.CaseCount); err != nil {
			return fmt.Errorf("error inserting hepatitis_cases %d-%02d: %w", m.Year, m.Month, err)
		}
	}

	return tx.Commit()
}

// ListHepatitisMonthly retrieves monthly case counts ordered by year and
// month. An empty years slice means all years.
func (q *Queries) ListHepatitisMonthly(ctx context.Context, years []int) ([]HepatitisMonth, error) {
	query := `SELECT year, month, case_count FROM hepatitis_cases`
	args := yearFilterArgs(years)
	if len(args) > 0 {
		query += ` WHERE year IN (` + placeholders(len(args)) + `)`
	}
	query += ` ORDER BY year, month`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var months []HepatitisMonth
	for rows.Next() {
		var m HepatitisMonth
		if err := rows.Scan(&m.Year, &m.Month, &m.CaseCount); err != nil {
			return nil, err
		}
		months = append(months, m)
	}

	return months, rows.Err()
}

// ListHepatitisYearly retrieves yearly case totals ordered by year. An empty
// years slice means all years.
func (q *Queries) ListHepatitisYearly(ctx context.Context, years []int) ([]HepatitisYear, error) {
	query := `SELECT year, SUM(case_count) FROM hepatitis_cases`
	args := yearFilterArgs(years)
	if len(args) > 0 {
		query += ` WHERE year IN (` + placeholders(len(args)) + `)`
	}
	query += ` GROUP BY year ORDER BY year`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var totals []HepatitisYear
	for rows.Next() {
		var y HepatitisYear
		if err := rows.Scan(&y.Year, &y.CaseCount); err != nil {
			return nil, err
		}
		totals = append(totals, y)
	}

	return totals, rows.Err()
}

// CountHepatitisCases returns the number of stored monthly records.
func (q *Queries) CountHepatitisCases(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hepatitis_cases`).Scan(&count)
	return count, err
}

func yearFilterArgs(years []int) []any {
	args := make([]any, 0, len(years))
	for _, y := range years {
		args = append(args, y)
	}
	return args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
