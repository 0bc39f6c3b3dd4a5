// Package exitcode defines the process exit status for each failure class.
package exitcode

const (
	Success         = 0
	UsageError      = 1 // bad arguments, flags or profile
	ValidationError = 2 // unreadable or invalid visit spreadsheet
	ReferenceError  = 3 // municipality reference could not be loaded
	WriteError      = 4 // report files or snapshot could not be written
	ArchiveError    = 5
)
