package restapi

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/utils"
)

const exportSheet = "Data"

// exportHandler serves the normalized records of one dataset as an xlsx
// workbook.
func (api *RestAPI) exportHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	id := utils.ExtractIDFromParams(r, "id")
	cfg, ok := api.DataManager.Lookup(id)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	if snapshot, ok := api.DataManager.SnapshotFor(cfg.ID); ok && snapshot.Status != dataset.StatusReady {
		api.dataUnavailableResponse(w, r, cfg.ID)
		return
	}

	f := excelize.NewFile()
	defer f.Close() // nolint:errcheck

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	var err error
	switch cfg.Kind {
	case dataset.KindAnnual:
		err = api.fillAnnualSheet(r, f)
	case dataset.KindMonthly:
		err = api.fillMonthlySheet(r, f)
	default:
		err = fmt.Errorf("unknown dataset kind %q", cfg.Kind)
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cfg.ID+".xlsx"))
	if err := f.Write(w); err != nil {
		api.Logger.Error("failed to write export", "error", err, "dataset", cfg.ID)
	}
}

func (api *RestAPI) fillAnnualSheet(r *http.Request, f *excelize.File) error {
	if err := f.SetSheetRow(exportSheet, "A1", &[]interface{}{"Year", "Amount (USD)"}); err != nil {
		return err
	}

	payments, err := api.DataManager.VizDB.Queries.ListDebtService(r.Context(), 0, maxExportYear)
	if err != nil {
		return err
	}

	for i, p := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &[]interface{}{p.Year, p.Amount}); err != nil {
			return err
		}
	}
	return nil
}

func (api *RestAPI) fillMonthlySheet(r *http.Request, f *excelize.File) error {
	if err := f.SetSheetRow(exportSheet, "A1", &[]interface{}{"Year", "Month", "Cases"}); err != nil {
		return err
	}

	months, err := api.DataManager.VizDB.Queries.ListHepatitisMonthly(r.Context(), nil)
	if err != nil {
		return err
	}

	for i, m := range months {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &[]interface{}{m.Year, m.Month, m.CaseCount}); err != nil {
			return err
		}
	}
	return nil
}

// maxExportYear is an upper bound wide enough for any configured window.
const maxExportYear = 9999
