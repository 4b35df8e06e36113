package service

import (
	"math/rand"

	"github.com/classify-edu/classify-server/internal/model"
)

// SelectPool draws up to n questions uniformly at random without replacement.
// When fewer than n questions are eligible it returns all of them; callers get
// silent truncation, not an error. The input slice is not modified.
func SelectPool(rng *rand.Rand, eligible []model.Question, n int) []model.Question {
	if n <= 0 {
		return nil
	}
	shuffled := make([]model.Question, len(eligible))
	copy(shuffled, eligible)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
