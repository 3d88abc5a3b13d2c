package dto

import (
	"github.com/google/uuid"
)

// HybridSearchRequest is bound from query parameters; zero values on the
// tuning knobs fall back to retrieval defaults.
type HybridSearchRequest struct {
	Query          string     `query:"query" validate:"required"`
	ProjectId      uuid.UUID  `query:"project_id" validate:"required"`
	FileId         *uuid.UUID `query:"file_id"`
	FileType       *string    `query:"file_type"`
	MatchCount     int        `query:"match_count" validate:"omitempty,min=1,max=50"`
	FullTextWeight float64    `query:"full_text_weight" validate:"omitempty,min=0"`
	SemanticWeight float64    `query:"semantic_weight" validate:"omitempty,min=0"`
	RRFK           int        `query:"rrf_k" validate:"omitempty,min=1"`
}

type HybridSearchResult struct {
	Id             uuid.UUID `json:"id"`
	CaseFileId     uuid.UUID `json:"case_file_id"`
	Content        string    `json:"content"`
	ChunkType      string    `json:"chunk_type"`
	ChunkIndex     int       `json:"chunk_index"`
	PageNumber     *int      `json:"page_number,omitempty"`
	SectionHeading *string   `json:"section_heading,omitempty"`
	TimestampStart *float64  `json:"timestamp_start,omitempty"`
	SourceFileName string    `json:"source_file_name"`
	SourceFileType string    `json:"source_file_type"`
	RrfScore       float64   `json:"rrf_score"`
}

type HybridSearchResponse struct {
	Query   string               `json:"query"`
	Results []HybridSearchResult `json:"results"`
}
