package train

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sharma-alok1/RailMate/backend/internal/model/train"
)

// AvailabilityClasses are reported by every snapshot, whatever the train
// actually carries.
var AvailabilityClasses = []string{"SL", "3A", "2A", "1A", "CC", "EC"}

// AvailabilitySimulator fabricates seat counts. There is no reservation
// backend behind it: every call draws fresh numbers, so two snapshots for
// the same train and date will usually differ.
type AvailabilitySimulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAvailabilitySimulator seeds a PCG source; seed 0 uses the clock.
func NewAvailabilitySimulator(seed uint64) *AvailabilitySimulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewAvailabilitySimulatorWithRand(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewAvailabilitySimulatorWithRand uses rng as the randomness source.
func NewAvailabilitySimulatorWithRand(rng *rand.Rand) *AvailabilitySimulator {
	return &AvailabilitySimulator{rng: rng}
}

// Snapshot returns available in [10,59], waiting in [0,19] and rac in [0,9]
// for each class in AvailabilityClasses.
func (a *AvailabilitySimulator) Snapshot() map[string]train.SeatStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]train.SeatStatus, len(AvailabilityClasses))
	for _, class := range AvailabilityClasses {
		out[class] = train.SeatStatus{
			Available: a.rng.IntN(50) + 10,
			Waiting:   a.rng.IntN(20),
			RAC:       a.rng.IntN(10),
		}
	}
	return out
}
