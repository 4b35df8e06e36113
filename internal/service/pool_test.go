package service

import (
	"math/rand"
	"testing"

	"github.com/classify-edu/classify-server/internal/model"
)

func questionsWithIDs(ids ...uint) []model.Question {
	out := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Question{ID: id})
	}
	return out
}

func TestSelectPoolSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	eligible := questionsWithIDs(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)

	got := SelectPool(rng, eligible, 4)
	if len(got) != 4 {
		t.Fatalf("pool size = %d, want 4", len(got))
	}
}

func TestSelectPoolNoDuplicates(t *testing.T) {
	eligible := questionsWithIDs(1, 2, 3, 4, 5, 6, 7, 8)

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		got := SelectPool(rng, eligible, 5)
		seen := make(map[uint]bool, len(got))
		for _, q := range got {
			if seen[q.ID] {
				t.Fatalf("seed %d: question %d drawn twice", seed, q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestSelectPoolTruncatesWhenPoolTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	eligible := questionsWithIDs(1, 2, 3)

	got := SelectPool(rng, eligible, 30)
	if len(got) != 3 {
		t.Fatalf("pool size = %d, want all 3 eligible", len(got))
	}
}

func TestSelectPoolZeroOrNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	eligible := questionsWithIDs(1, 2, 3)

	if got := SelectPool(rng, eligible, 0); got != nil {
		t.Fatalf("n=0: got %d questions, want nil", len(got))
	}
	if got := SelectPool(rng, eligible, -2); got != nil {
		t.Fatalf("n=-2: got %d questions, want nil", len(got))
	}
}

func TestSelectPoolDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	eligible := questionsWithIDs(1, 2, 3, 4, 5)

	SelectPool(rng, eligible, 3)
	for i, q := range eligible {
		if q.ID != uint(i+1) {
			t.Fatalf("input slice reordered at index %d: got %d", i, q.ID)
		}
	}
}
