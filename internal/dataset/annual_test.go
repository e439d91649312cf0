package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debtConfig() DatasetConfig {
	return DatasetConfig{
		ID:              DebtServiceID,
		Kind:            KindAnnual,
		TimeColumn:      "refPeriod",
		ValueColumn:     "Value",
		IndicatorColumn: "Indicator Code",
		IndicatorCode:   "DT.TDS.DPPG.CD",
		MinYear:         1970,
		MaxYear:         2022,
	}
}

func TestParseAnnualSeries(t *testing.T) {
	tbl, err := parseTable([]byte(
		"Indicator Code,refPeriod,Value\n" +
			"DT.TDS.DPPG.CD,1971,98.2\n" +
			"DT.TDS.DPPG.CD,1970,120.5\n" +
			"DT.TDS.DPPG.CD,2022,310.0\n"))
	require.NoError(t, err)

	payments, skipped, err := parseAnnualSeries(tbl, debtConfig())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, payments, 3)

	assert.Equal(t, 1970, payments[0].Year)
	assert.InDelta(t, 120.5, payments[0].Amount, 1e-9)
	for i := 1; i < len(payments); i++ {
		assert.Greater(t, payments[i].Year, payments[i-1].Year, "years should be strictly increasing")
	}
	for _, p := range payments {
		assert.GreaterOrEqual(t, p.Year, 1970)
		assert.LessOrEqual(t, p.Year, 2022)
	}
}

func TestParseAnnualSeriesFiltersOtherIndicators(t *testing.T) {
	tbl, err := parseTable([]byte(
		"Indicator Code,refPeriod,Value\n" +
			"DT.TDS.DPPG.CD,1990,50.0\n" +
			"DT.INT.DPPG.CD,1990,999.0\n"))
	require.NoError(t, err)

	payments, skipped, err := parseAnnualSeries(tbl, debtConfig())
	require.NoError(t, err)
	assert.Zero(t, skipped, "rows for other indicators are filtered, not skipped")
	require.Len(t, payments, 1)
	assert.InDelta(t, 50.0, payments[0].Amount, 1e-9)
}

func TestParseAnnualSeriesSkipsMalformedRows(t *testing.T) {
	tbl, err := parseTable([]byte(
		"Indicator Code,refPeriod,Value\n" +
			"DT.TDS.DPPG.CD,1990,50.0\n" +
			"DT.TDS.DPPG.CD,not-a-year,12.0\n" +
			"DT.TDS.DPPG.CD,1991,not-a-number\n" +
			"DT.TDS.DPPG.CD,1965,30.0\n"))
	require.NoError(t, err)

	payments, skipped, err := parseAnnualSeries(tbl, debtConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, payments, 1)
	assert.Equal(t, 1990, payments[0].Year)
}

func TestParseAnnualSeriesDuplicateYearLastWins(t *testing.T) {
	tbl, err := parseTable([]byte(
		"Indicator Code,refPeriod,Value\n" +
			"DT.TDS.DPPG.CD,2000,1.0\n" +
			"DT.TDS.DPPG.CD,2000,2.0\n"))
	require.NoError(t, err)

	payments, _, err := parseAnnualSeries(tbl, debtConfig())
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.InDelta(t, 2.0, payments[0].Amount, 1e-9)
}

func TestParseAnnualSeriesMissingColumn(t *testing.T) {
	tbl, err := parseTable([]byte("refPeriod,Value\n1990,50.0\n"))
	require.NoError(t, err)

	_, _, err = parseAnnualSeries(tbl, debtConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Indicator Code")
}

func TestParseAnnualSeriesWithoutIndicatorFilter(t *testing.T) {
	cfg := debtConfig()
	cfg.IndicatorColumn = ""
	cfg.IndicatorCode = ""

	tbl, err := parseTable([]byte("refPeriod,Value\n1990,50.0\n1991,60.0\n"))
	require.NoError(t, err)

	payments, skipped, err := parseAnnualSeries(tbl, cfg)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, payments, 2)
}
