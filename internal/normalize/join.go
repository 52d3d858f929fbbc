package normalize

import "fmt"

// Pair is one right-hand row of a many-to-one join.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// JoinManyToOne returns, for every left row, the value of the right row
// sharing its key. The result is aligned with left.
//
// The right side must hold each key at most once and every left key must
// find a match; otherwise the join would duplicate or drop rows and
// ErrJoinCardinality is returned.
func JoinManyToOne[L any, K comparable, V any](left []L, key func(L) K, right []Pair[K, V]) ([]V, error) {
	lookup := make(map[K]V, len(right))
	for _, p := range right {
		if _, dup := lookup[p.Key]; dup {
			return nil, fmt.Errorf("%w: right key %v is not unique", ErrJoinCardinality, p.Key)
		}
		lookup[p.Key] = p.Value
	}

	out := make([]V, len(left))
	for i, row := range left {
		k := key(row)
		v, ok := lookup[k]
		if !ok {
			return nil, fmt.Errorf("%w: left row %d key %v has no match", ErrJoinCardinality, i, k)
		}
		out[i] = v
	}
	return out, nil
}
