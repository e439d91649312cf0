package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"lebstories.aub.edu.lb/vizdb"
)

// parseAnnualSeries normalizes an annual indicator table (such as the World
// Bank debt service series) into one record per year. Rows for other
// indicator codes are filtered out; rows with an unparsable year or value,
// or a year outside the configured window, are skipped and counted. When a
// year appears more than once the last row wins. The result is sorted by
// year, so years come back strictly increasing.
func parseAnnualSeries(tbl *table, cfg DatasetConfig) ([]vizdb.DebtServicePayment, int, error) {
	if !tbl.hasColumn(cfg.TimeColumn) {
		return nil, 0, fmt.Errorf("source is missing column %q", cfg.TimeColumn)
	}
	if !tbl.hasColumn(cfg.ValueColumn) {
		return nil, 0, fmt.Errorf("source is missing column %q", cfg.ValueColumn)
	}
	if cfg.IndicatorCode != "" && !tbl.hasColumn(cfg.IndicatorColumn) {
		return nil, 0, fmt.Errorf("source is missing column %q", cfg.IndicatorColumn)
	}

	amounts := make(map[int]float64)
	skipped := 0

	for _, row := range tbl.rows {
		if cfg.IndicatorCode != "" {
			code, ok := tbl.cell(row, cfg.IndicatorColumn)
			if !ok || code != cfg.IndicatorCode {
				continue
			}
		}

		yearText, ok := tbl.cell(row, cfg.TimeColumn)
		if !ok {
			skipped++
			continue
		}
		year, err := strconv.Atoi(yearText)
		if err != nil || year < cfg.MinYear || year > cfg.MaxYear {
			skipped++
			continue
		}

		valueText, ok := tbl.cell(row, cfg.ValueColumn)
		if !ok {
			skipped++
			continue
		}
		amount, err := strconv.ParseFloat(valueText, 64)
		if err != nil {
			skipped++
			continue
		}

		amounts[year] = amount
	}

	years := make([]int, 0, len(amounts))
	for year := range amounts {
		years = append(years, year)
	}
	sort.Ints(years)

	payments := make([]vizdb.DebtServicePayment, 0, len(years))
	for _, year := range years {
		payments = append(payments, vizdb.DebtServicePayment{Year: year, Amount: amounts[year]})
	}

	return payments, skipped, nil
}
