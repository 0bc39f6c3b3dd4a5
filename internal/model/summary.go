package model

import "time"

// ReferenceMiss counts records whose municipality fell back to the default codes.
type ReferenceMiss struct {
	Municipality string
	Records      int
}

// RunSummary captures metrics from a single report run.
type RunSummary struct {
	RunID         string
	Period        string
	InputPath     string
	InputSHA256   string
	Variant       string
	RowsRead      int
	RowsAccepted  int
	RowsRejected  int
	ACRecords     int
	USRecords     int
	AFRecords     int
	CTRecords     int
	Misses        []ReferenceMiss
	Files         []string
	ArchivePath   string
	SnapshotPath  string
	DurationLoad  time.Duration
	DurationBuild time.Duration
	DurationWrite time.Duration
	DurationTotal time.Duration
}

// MissedRecords returns the total number of records that used default location codes.
func (s *RunSummary) MissedRecords() int {
	n := 0
	for _, m := range s.Misses {
		n += m.Records
	}
	return n
}
