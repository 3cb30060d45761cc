package systems

import "github.com/mlange-42/ark/ecs"

// SplitRNG is the randomness needed to shuffle a membership before
// partitioning it.
type SplitRNG interface {
	Shuffle(n int, swap func(i, j int))
}

// Partition shuffles members in place and splits them into a retained half
// and a transferred half. Shuffling first removes positional bias from the
// partition. Every member lands in exactly one half, so the combined size
// always equals the input size. The transferred half is copied into fresh
// storage so the two halves share no backing array.
func Partition(rng SplitRNG, members []ecs.Entity) (keep, transfer []ecs.Entity) {
	rng.Shuffle(len(members), func(i, j int) {
		members[i], members[j] = members[j], members[i]
	})
	mid := len(members) / 2
	keep = members[:mid]
	transfer = append([]ecs.Entity(nil), members[mid:]...)
	return keep, transfer
}
