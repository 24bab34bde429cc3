package scraper

import "errors"

var (
	// ErrStructureNotFound is returned when the markup holds no roster table.
	ErrStructureNotFound = errors.New("table structure not found")
	// ErrCorruptTable is returned when a data row does not have one cell per header.
	ErrCorruptTable = errors.New("corrupt table")
	// ErrFetchFailed is returned for any network or HTTP failure while fetching.
	ErrFetchFailed = errors.New("fetch failed")
)
