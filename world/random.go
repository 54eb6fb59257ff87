package world

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue hashes a root seed string and a subsystem label into
// a non-zero seed so every subsystem draws from its own stable stream.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG derives a seeded RNG for the given subsystem label.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	seedValue := DeterministicSeedValue(rootSeed, label)
	return rand.New(rand.NewSource(seedValue))
}

// RNGFactory produces deterministic RNG instances for generation subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand
