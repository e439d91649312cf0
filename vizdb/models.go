package vizdb

import "time"

// DebtServicePayment represents one row of the debt_service table
type DebtServicePayment struct {
	Year   int     // year
	Amount float64 // amount, current USD
}

// HepatitisMonth represents one row of the hepatitis_cases table
type HepatitisMonth struct {
	Year      int // year
	Month     int // month, 1-12
	CaseCount int // case_count
}

// HepatitisYear is an aggregated yearly total over hepatitis_cases
type HepatitisYear struct {
	Year      int
	CaseCount int
}

// DatasetLoad records one load of a dataset into the database
type DatasetLoad struct {
	DatasetID   string
	Source      string
	Status      string
	RecordCount int
	SkippedRows int
	LoadedAt    time.Time
}
