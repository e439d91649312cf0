package restapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/internal/utils"
)

// buildChartConfig assembles the chart for one dataset, honoring the same
// filter parameters as the data endpoints. Non-nil fieldErrors means the
// request was invalid; a non-nil error means the query itself failed.
func (api *RestAPI) buildChartConfig(ctx context.Context, cfg dataset.DatasetConfig, params url.Values) (models.ChartConfig, map[string][]string, error) {
	var points []models.ChartPoint
	xAxis := "Year"

	switch cfg.Kind {
	case dataset.KindAnnual:
		from, fieldErrors := utils.ParseIntParam(params, "from", cfg.MinYear, nil)
		to, fieldErrors := utils.ParseIntParam(params, "to", cfg.MaxYear, fieldErrors)
		if len(fieldErrors) == 0 && from > to {
			fieldErrors["from"] = append(fieldErrors["from"], `Field "from" must not be after field "to".`)
		}
		if len(fieldErrors) > 0 {
			return models.ChartConfig{}, fieldErrors, nil
		}

		payments, err := api.DataManager.VizDB.Queries.ListDebtService(ctx, from, to)
		if err != nil {
			return models.ChartConfig{}, nil, err
		}
		for _, p := range payments {
			points = append(points, models.ChartPoint{Label: strconv.Itoa(p.Year), Value: p.Amount})
		}

	case dataset.KindMonthly:
		years, fieldErrors := utils.ParseYearListParam(params, "years", nil)
		view, fieldErrors := utils.ParseChoiceParam(params, "view", []string{"monthly", "yearly"}, fieldErrors)
		if len(fieldErrors) > 0 {
			return models.ChartConfig{}, fieldErrors, nil
		}

		if view == "yearly" {
			totals, err := api.DataManager.VizDB.Queries.ListHepatitisYearly(ctx, years)
			if err != nil {
				return models.ChartConfig{}, nil, err
			}
			for _, y := range totals {
				points = append(points, models.ChartPoint{Label: strconv.Itoa(y.Year), Value: float64(y.CaseCount)})
			}
		} else {
			xAxis = "Month-Year"
			months, err := api.DataManager.VizDB.Queries.ListHepatitisMonthly(ctx, years)
			if err != nil {
				return models.ChartConfig{}, nil, err
			}
			for _, m := range months {
				label := fmt.Sprintf("%02d-%d", m.Month, m.Year)
				points = append(points, models.ChartPoint{Label: label, Value: float64(m.CaseCount)})
			}
		}

	default:
		return models.ChartConfig{}, nil, fmt.Errorf("unknown dataset kind %q", cfg.Kind)
	}

	config := models.NewChartConfig(cfg.Chart, cfg.Title, xAxis, cfg.YAxis, cfg.SeriesName, points)
	return config, nil, nil
}
