package models

// DatasetSummary describes one catalog entry as reported by the datasets
// and status endpoints.
type DatasetSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	RecordCount   int    `json:"recordCount"`
	SkippedRows   int    `json:"skippedRows"`
	LastRefreshed int64  `json:"lastRefreshed"`
	Error         string `json:"error,omitempty"`
}

// StatusData is the payload of the status endpoint.
type StatusData struct {
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Datasets      []DatasetSummary `json:"datasets"`
}
