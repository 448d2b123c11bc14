package model

import "time"

// DifferenceType names how a file differs between two trees.
type DifferenceType string

const (
	DifferenceAdded    DifferenceType = "added"
	DifferenceDeleted  DifferenceType = "deleted"
	DifferenceModified DifferenceType = "modified"
)

// Difference is one entry of a comparison, keyed by a slash-separated relative path.
type Difference struct {
	Type        DifferenceType `json:"type"`
	File        string         `json:"file"`
	Description string         `json:"description"`
	SourceHash  string         `json:"source_hash,omitempty"`
	TargetHash  string         `json:"target_hash,omitempty"`
}

// ComparisonResult is the content-addressed diff of a source tree against a target tree.
// "Added" files exist only under the source, "deleted" files only under the target.
type ComparisonResult struct {
	SourcePath    string       `json:"source_path"`
	TargetPath    string       `json:"target_path"`
	AddedFiles    []string     `json:"added_files"`
	ModifiedFiles []string     `json:"modified_files"`
	DeletedFiles  []string     `json:"deleted_files"`
	Differences   []Difference `json:"differences"`
	ComparedAt    time.Time    `json:"compared_at"`
}

// TotalDifferences is the number of added, modified and deleted files.
func (r *ComparisonResult) TotalDifferences() int {
	if r == nil {
		return 0
	}
	return len(r.AddedFiles) + len(r.ModifiedFiles) + len(r.DeletedFiles)
}

// HasDifferences reports whether the two trees differ at all.
func (r *ComparisonResult) HasDifferences() bool {
	return r.TotalDifferences() > 0
}

// ComparisonSummary is the count-only view of a ComparisonResult.
type ComparisonSummary struct {
	SourcePath       string    `json:"source_path"`
	TargetPath       string    `json:"target_path"`
	AddedFiles       int       `json:"added_files"`
	ModifiedFiles    int       `json:"modified_files"`
	DeletedFiles     int       `json:"deleted_files"`
	TotalDifferences int       `json:"total_differences"`
	HasDifferences   bool      `json:"has_differences"`
	ComparedAt       time.Time `json:"compared_at"`
}

// Summary returns the count-only view.
func (r *ComparisonResult) Summary() ComparisonSummary {
	return ComparisonSummary{
		SourcePath:       r.SourcePath,
		TargetPath:       r.TargetPath,
		AddedFiles:       len(r.AddedFiles),
		ModifiedFiles:    len(r.ModifiedFiles),
		DeletedFiles:     len(r.DeletedFiles),
		TotalDifferences: r.TotalDifferences(),
		HasDifferences:   r.HasDifferences(),
		ComparedAt:       r.ComparedAt,
	}
}
