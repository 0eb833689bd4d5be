package classifier

import (
	"math/rand"

	"github.com/naniedobe1/PoleBrothers/models"
)

// Assessment is a pole-condition verdict with a confidence interval.
type Assessment struct {
	Status          models.PoleStatus
	LowerConfidence float64
	UpperConfidence float64
}

// Classifier assigns a condition to a captured pole image. The orchestrator
// only depends on this interface so the implementation can be swapped for a
// real model without touching the pipeline.
type Classifier interface {
	Classify(imagePath string) (Assessment, error)
}

// Random is a PLACEHOLDER classifier: it picks one of the five statuses
// uniformly at random and reports a zero confidence interval. It stands in
// for a future image classification model and must not be mistaken for one.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random classifier. A nil source uses the shared
// global generator.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Classify(_ string) (Assessment, error) {
	statuses := models.AllStatuses()
	var n int
	if r.rng != nil {
		n = r.rng.Intn(len(statuses))
	} else {
		n = rand.Intn(len(statuses))
	}
	return Assessment{Status: statuses[n]}, nil
}

// Fixed always answers with the given status. Useful in tests and as a
// manual override.
type Fixed struct {
	Status models.PoleStatus
}

func (f Fixed) Classify(_ string) (Assessment, error) {
	return Assessment{Status: f.Status}, nil
}
