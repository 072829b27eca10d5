package domain

import (
	"time"
)

// BatchReport summarizes one ingest run over a source directory.
type BatchReport struct {
	BatchID     string          `json:"batch_id"`
	SourceDir   string          `json:"source_dir"`
	TotalFiles  int             `json:"total_files"`
	Organized   []OrganizedFile `json:"organized"`
	Errors      []BatchError    `json:"errors"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
}

// OrganizedFile records a file that was successfully placed in the store.
// Processing fields are only populated when the batch ran with immediate
// processing; a processing failure does not undo the placement.
type OrganizedFile struct {
	Original        string `json:"original"`
	Destination     string `json:"destination"`
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	Processed       string `json:"processed,omitempty"`
	ProcessingError string `json:"processing_error,omitempty"`
}

// BatchError records a file the batch could not place.
type BatchError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Succeeded returns the number of files placed in the store.
func (r *BatchReport) Succeeded() int {
	return len(r.Organized)
}

// Failed returns the number of files that could not be placed.
func (r *BatchReport) Failed() int {
	return len(r.Errors)
}
