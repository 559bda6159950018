// Package ingest runs the file-to-vector-store ingestion pipeline
package ingest

// BatchStatus summarizes a batch ingestion outcome
type BatchStatus string

const (
	// StatusSuccess means every file ingested cleanly
	StatusSuccess BatchStatus = "success"
	// StatusPartial means some files ingested and some failed
	StatusPartial BatchStatus = "partial"
	// StatusFailed means every file failed
	StatusFailed BatchStatus = "failed"
	// StatusEmpty means no files matched the source pattern
	StatusEmpty BatchStatus = "empty"
)

// FileResult reports the outcome for one file in a batch
type FileResult struct {
	File       string `json:"file"`
	ChunkCount int    `json:"chunk_count"`
	Error      string `json:"error,omitempty"`
}

// Ok reports whether the file ingested without error
func (r *FileResult) Ok() bool {
	return r.Error == ""
}

// BatchResult aggregates the per-file outcomes of one ingestion run
type BatchResult struct {
	Status      BatchStatus  `json:"status"`
	Files       []FileResult `json:"files"`
	TotalChunks int          `json:"total_chunks"`
}

// Summarize derives the batch status and chunk total from the file results
func Summarize(files []FileResult) *BatchResult {
	result := &BatchResult{Files: files}

	if len(files) == 0 {
		result.Status = StatusEmpty
		return result
	}

	succeeded := 0
	for _, f := range files {
		if f.Ok() {
			succeeded++
			result.TotalChunks += f.ChunkCount
		}
	}

	switch succeeded {
	case len(files):
		result.Status = StatusSuccess
	case 0:
		result.Status = StatusFailed
	default:
		result.Status = StatusPartial
	}
	return result
}
