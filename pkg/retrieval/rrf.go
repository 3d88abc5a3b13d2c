package retrieval

import (
	"sort"

	"github.com/google/uuid"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/contract"
)

// Params controls reciprocal rank fusion. Zero values fall back to the
// defaults below, so callers can pass only what a request overrides.
type Params struct {
	MatchCount     int
	FullTextWeight float64
	SemanticWeight float64
	RRFK           int
}

const (
	DefaultMatchCount     = 10
	DefaultFullTextWeight = 1.0
	DefaultSemanticWeight = 1.0
	DefaultRRFK           = 50
)

func (p Params) normalized() Params {
	if p.MatchCount <= 0 {
		p.MatchCount = DefaultMatchCount
	}
	if p.FullTextWeight <= 0 {
		p.FullTextWeight = DefaultFullTextWeight
	}
	if p.SemanticWeight <= 0 {
		p.SemanticWeight = DefaultSemanticWeight
	}
	if p.RRFK <= 0 {
		p.RRFK = DefaultRRFK
	}
	return p
}

// Match is a fused result. Ranks are 1-based positions in the source lists;
// zero means the chunk did not appear in that list.
type Match struct {
	Chunk        *entity.DocumentChunk
	Score        float64
	FullTextRank int
	SemanticRank int
}

// Fuse merges a full-text rank list and a semantic rank list with
// reciprocal rank fusion: each list contributes weight/(k+rank) for the
// chunks it contains. Results are ordered by descending score, with
// chunk index and then id breaking ties so output is deterministic.
func Fuse(fullText, semantic []contract.RankedChunk, params Params) []Match {
	p := params.normalized()

	merged := make(map[uuid.UUID]*Match, len(fullText)+len(semantic))
	for _, rc := range fullText {
		merged[rc.Chunk.Id] = &Match{Chunk: rc.Chunk, FullTextRank: rc.Rank}
	}
	for _, rc := range semantic {
		if m, ok := merged[rc.Chunk.Id]; ok {
			m.SemanticRank = rc.Rank
		} else {
			merged[rc.Chunk.Id] = &Match{Chunk: rc.Chunk, SemanticRank: rc.Rank}
		}
	}

	matches := make([]Match, 0, len(merged))
	for _, m := range merged {
		if m.FullTextRank > 0 {
			m.Score += p.FullTextWeight / float64(p.RRFK+m.FullTextRank)
		}
		if m.SemanticRank > 0 {
			m.Score += p.SemanticWeight / float64(p.RRFK+m.SemanticRank)
		}
		matches = append(matches, *m)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Chunk.ChunkIndex != matches[j].Chunk.ChunkIndex {
			return matches[i].Chunk.ChunkIndex < matches[j].Chunk.ChunkIndex
		}
		return matches[i].Chunk.Id.String() < matches[j].Chunk.Id.String()
	})

	if len(matches) > p.MatchCount {
		matches = matches[:p.MatchCount]
	}
	return matches
}
