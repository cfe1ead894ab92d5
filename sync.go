package mapsync

// SyncStatus is the outcome of synchronizing one prospect.
type SyncStatus int

// Sync outcomes.
const (
	SyncFailed SyncStatus = iota
	SyncCreated
	SyncUpdated
)

// String returns the status label.
func (s SyncStatus) String() string {
	switch s {
	case SyncCreated:
		return "created"
	case SyncUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// SyncResult reports what happened to one prospect during a sync pass.
type SyncResult struct {
	Prospect *Prospect
	Status   SyncStatus

	// RowID is the created or updated row. Empty when Status is SyncFailed.
	RowID string

	// Reason is a human readable failure description.
	Reason string
	Err    error
}

// SyncSummary counts results by status.
type SyncSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Summarize counts results by status.
func Summarize(results []SyncResult) SyncSummary {
	var s SyncSummary
	for _, r := range results {
		switch r.Status {
		case SyncCreated:
			s.Created++
		case SyncUpdated:
			s.Updated++
		default:
			s.Failed++
		}
	}
	return s
}
