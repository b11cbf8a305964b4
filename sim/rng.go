package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible generated scenario: equal keys and
// generator parameters give equal passenger lists.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemBoarding drives boarding order shuffles. It is seeded with
	// the master seed itself so --seed alone reproduces the order.
	SubsystemBoarding = "boarding"

	// SubsystemBaggage decides who carries baggage.
	SubsystemBaggage = "baggage"
)

// PartitionedRNG hands out one independent stream per subsystem, so drawing
// more baggage flags never perturbs the boarding order.
//
// The boarding stream is seeded with the master seed; every other stream
// with masterSeed XOR fnv1a64(name). Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use. Later
// calls with the same name return the same *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemBoarding {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
