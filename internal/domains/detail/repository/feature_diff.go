package repository

import (
	"github.com/google/uuid"
)

// featureDiff computes the delta between a detail's current feature set
// and the desired full-replacement set: toAdd = desired - current,
// toRemove = current - desired. Applying the delta twice with the same
// desired set is a no-op the second time.
func featureDiff(current, desired []uuid.UUID) (toAdd, toRemove []uuid.UUID) {
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	return toAdd, toRemove
}
