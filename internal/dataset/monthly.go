package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"lebstories.aub.edu.lb/vizdb"
)

// The portal writes reporting periods as free text around an MM-YYYY core,
// e.g. "Week 2, 01-2015".
var monthYearRe = regexp.MustCompile(`(\d{2})-(\d{4})`)

// parseMonthlyCounts normalizes a surveillance table into per-month case
// totals. Rows without an extractable MM-YYYY period, with a negative or
// unparsable count, or outside the configured year window are skipped and
// counted. Counts for the same month are summed. The result is sorted by
// year then month.
func parseMonthlyCounts(tbl *table, cfg DatasetConfig) ([]vizdb.HepatitisMonth, int, error) {
	if !tbl.hasColumn(cfg.TimeColumn) {
		return nil, 0, fmt.Errorf("source is missing column %q", cfg.TimeColumn)
	}
	if !tbl.hasColumn(cfg.ValueColumn) {
		return nil, 0, fmt.Errorf("source is missing column %q", cfg.ValueColumn)
	}

	type bucket struct {
		year  int
		month int
	}
	totals := make(map[bucket]int)
	skipped := 0

	for _, row := range tbl.rows {
		periodText, ok := tbl.cell(row, cfg.TimeColumn)
		if !ok {
			skipped++
			continue
		}

		match := monthYearRe.FindStringSubmatch(periodText)
		if match == nil {
			skipped++
			continue
		}
		month, _ := strconv.Atoi(match[1])
		year, _ := strconv.Atoi(match[2])
		if month < 1 || month > 12 || year < cfg.MinYear || year > cfg.MaxYear {
			skipped++
			continue
		}

		countText, ok := tbl.cell(row, cfg.ValueColumn)
		if !ok {
			skipped++
			continue
		}
		count, err := strconv.Atoi(countText)
		if err != nil || count < 0 {
			skipped++
			continue
		}

		totals[bucket{year, month}] += count
	}

	buckets := make([]bucket, 0, len(totals))
	for b := range totals {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})

	months := make([]vizdb.HepatitisMonth, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, vizdb.HepatitisMonth{Year: b.year, Month: b.month, CaseCount: totals[b]})
	}

	return months, skipped, nil
}
