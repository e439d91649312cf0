package models

import "fmt"

// DebtServiceRecord is one year of public and publicly guaranteed debt
// service payments, in current US dollars.
type DebtServiceRecord struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// HepatitisRecord is the number of hepatitis cases reported in one
// month of the surveillance window.
type HepatitisRecord struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	CaseCount int `json:"caseCount"`
}

// HepatitisYearTotal is the aggregated case count for one year.
type HepatitisYearTotal struct {
	Year      int `json:"year"`
	CaseCount int `json:"caseCount"`
}

// PeriodLabel renders the record's month bucket as "MM-YYYY", matching the
// refPeriod format used by the upstream portal.
func (r HepatitisRecord) PeriodLabel() string {
	return fmt.Sprintf("%02d-%d", r.Month, r.Year)
}
