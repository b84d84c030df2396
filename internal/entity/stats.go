package entity

// DateCount is the number of scans on one calendar day (YYYY-MM-DD, UTC).
type DateCount struct {
	Date  string
	Count int64
}

// GroupCount is the number of scans sharing one attribute value.
// An empty Value groups the scans where the attribute was absent.
type GroupCount struct {
	Value string
	Count int64
}

// Stats aggregates the scan events of a QR code over a time range.
type Stats struct {
	TotalScans             int64
	UniqueUsers            int64
	ScansOverTime          []DateCount
	GeographicDistribution []GroupCount
	DeviceStats            []GroupCount
}

// AnomalyReport lists the scan events that arrived after a statistically unusual gap.
type AnomalyReport struct {
	Anomalies   []ScanEvent
	TotalEvents int
}
