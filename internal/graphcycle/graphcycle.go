// Package graphcycle detects reference cycles between named schema types.
package graphcycle

import "fmt"

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// CycleError reports a cycle passing through Key.
type CycleError[K comparable] struct {
	Key K
}

// Error returns the error string.
func (e CycleError[K]) Error() string {
	return fmt.Sprintf("cycle through %v", e.Key)
}

// Detect walks directed edges from each start key and reports the first
// cycle found. Next returns the keys a node references; keys without edges
// may be omitted.
func Detect[K comparable](starts []K, next func(K) []K) error {
	if next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(starts))

	var visit func(key K) error
	visit = func(key K) error {
		switch states[key] {
		case stateVisiting:
			return CycleError[K]{Key: key}
		case stateDone:
			return nil
		}
		states[key] = stateVisiting
		for _, ref := range next(key) {
			if err := visit(ref); err != nil {
				return err
			}
		}
		states[key] = stateDone
		return nil
	}

	for _, start := range starts {
		if err := visit(start); err != nil {
			return err
		}
	}
	return nil
}
