package retrieval

import (
	"testing"

	"github.com/google/uuid"

	"case-knowledge-be/internal/entity"
	"case-knowledge-be/internal/repository/contract"
)

func rankedList(chunks []*entity.DocumentChunk) []contract.RankedChunk {
	out := make([]contract.RankedChunk, len(chunks))
	for i, c := range chunks {
		out[i] = contract.RankedChunk{Chunk: c, Rank: i + 1}
	}
	return out
}

func chunk(index int) *entity.DocumentChunk {
	return &entity.DocumentChunk{Id: uuid.New(), ChunkIndex: index}
}

func TestFuseOverlapOutranksSingleList(t *testing.T) {
	shared := chunk(0)
	ftOnly := chunk(1)
	semOnly := chunk(2)

	matches := Fuse(
		rankedList([]*entity.DocumentChunk{ftOnly, shared}),
		rankedList([]*entity.DocumentChunk{semOnly, shared}),
		Params{},
	)

	if len(matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(matches))
	}
	if matches[0].Chunk.Id != shared.Id {
		t.Errorf("chunk present in both lists should rank first")
	}

	// rank 2 in both lists: 1/(50+2) + 1/(50+2)
	wantScore := 2.0 / 52.0
	if diff := matches[0].Score - wantScore; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("score = %v, want %v", matches[0].Score, wantScore)
	}
}

func TestFuseRankMonotonicity(t *testing.T) {
	// Within one list, a better rank must never score worse.
	chunks := []*entity.DocumentChunk{chunk(0), chunk(1), chunk(2), chunk(3)}
	matches := Fuse(rankedList(chunks), nil, Params{})

	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches[%d].Score %v > matches[%d].Score %v",
				i, matches[i].Score, i-1, matches[i-1].Score)
		}
	}
	if matches[0].Chunk.Id != chunks[0].Id {
		t.Errorf("best full-text rank should fuse first when semantic list is empty")
	}
}

func TestFuseWeights(t *testing.T) {
	ftBest := chunk(0)
	semBest := chunk(1)

	matches := Fuse(
		rankedList([]*entity.DocumentChunk{ftBest}),
		rankedList([]*entity.DocumentChunk{semBest}),
		Params{FullTextWeight: 2.0, SemanticWeight: 0.5},
	)

	if matches[0].Chunk.Id != ftBest.Id {
		t.Errorf("heavier full-text weight should promote the full-text hit")
	}
}

func TestFuseDeterministicTieBreak(t *testing.T) {
	// Same rank in disjoint lists gives identical scores; chunk_index breaks
	// the tie, so output order is stable across runs.
	a := chunk(5)
	b := chunk(9)

	for run := 0; run < 10; run++ {
		matches := Fuse(
			rankedList([]*entity.DocumentChunk{a}),
			rankedList([]*entity.DocumentChunk{b}),
			Params{},
		)
		if matches[0].Chunk.ChunkIndex != 5 || matches[1].Chunk.ChunkIndex != 9 {
			t.Fatalf("run %d: tie broken inconsistently", run)
		}
	}
}

func TestFuseMatchCountTruncation(t *testing.T) {
	var chunks []*entity.DocumentChunk
	for i := 0; i < 30; i++ {
		chunks = append(chunks, chunk(i))
	}

	matches := Fuse(rankedList(chunks), nil, Params{MatchCount: 7})
	if len(matches) != 7 {
		t.Errorf("matches = %d, want 7", len(matches))
	}

	// Default cap is 10.
	matches = Fuse(rankedList(chunks), nil, Params{})
	if len(matches) != DefaultMatchCount {
		t.Errorf("matches = %d, want default %d", len(matches), DefaultMatchCount)
	}
}

func TestFuseEmptyLists(t *testing.T) {
	if got := Fuse(nil, nil, Params{}); len(got) != 0 {
		t.Errorf("fusing empty lists = %d matches, want 0", len(got))
	}
}

func TestFuseRanksCarriedThrough(t *testing.T) {
	shared := chunk(0)
	matches := Fuse(
		rankedList([]*entity.DocumentChunk{shared}),
		rankedList([]*entity.DocumentChunk{shared}),
		Params{},
	)

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].FullTextRank != 1 || matches[0].SemanticRank != 1 {
		t.Errorf("ranks = (%d, %d), want (1, 1)",
			matches[0].FullTextRank, matches[0].SemanticRank)
	}
}
