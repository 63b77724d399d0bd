// Package reorder computes new orderings of task id lists.
//
// Every function is pure: inputs are never modified and the result is a
// freshly allocated slice. A function fails with domain.ErrInvalidMove only
// when the moving id is missing from the list it is claimed to come from.
//
// Position is derived from a desired ordering supplied by the caller
// (typically a drag-and-drop preview that may only contain part of the
// list). The moving id goes directly after the nearest preceding id of the
// desired ordering that exists in the target list; failing that, directly
// before the nearest following one; failing that, to the head.
package reorder

import (
	"fmt"

	"github.com/riordanpawley/focus/internal/domain"
)

// ReorderWithinList relocates movingID inside currentIDs to the position
// implied by desiredOrderedIDs. All other ids keep their relative order.
// If movingID does not appear in desiredOrderedIDs the order is unchanged.
func ReorderWithinList(movingID string, desiredOrderedIDs, currentIDs []string) ([]string, error) {
	if IndexOf(currentIDs, movingID) < 0 {
		return nil, notInList(movingID)
	}
	if IndexOf(desiredOrderedIDs, movingID) < 0 {
		return Clone(currentIDs), nil
	}

	rest := Without(currentIDs, movingID)
	return insertAt(rest, movingID, anchorIndex(movingID, desiredOrderedIDs, rest)), nil
}

// MoveBetweenLists removes movingID from sourceIDs and inserts it into
// targetIDs at the position implied by desiredOrderedIDs. The combined
// length of both lists is preserved.
func MoveBetweenLists(movingID string, desiredOrderedIDs, sourceIDs, targetIDs []string) (newSourceIDs, newTargetIDs []string, err error) {
	if IndexOf(sourceIDs, movingID) < 0 {
		return nil, nil, notInList(movingID)
	}

	newSourceIDs = Without(sourceIDs, movingID)
	// A stale copy in the target would otherwise become a duplicate
	target := Without(targetIDs, movingID)
	newTargetIDs = insertAt(target, movingID, anchorIndex(movingID, desiredOrderedIDs, target))
	return newSourceIDs, newTargetIDs, nil
}

// NudgeLeft swaps id with its predecessor. No-op at index 0.
func NudgeLeft(ids []string, id string) ([]string, error) {
	idx := IndexOf(ids, id)
	if idx < 0 {
		return nil, notInList(id)
	}
	out := Clone(ids)
	if idx > 0 {
		out[idx-1], out[idx] = out[idx], out[idx-1]
	}
	return out, nil
}

// NudgeRight swaps id with its successor. No-op at the last index.
func NudgeRight(ids []string, id string) ([]string, error) {
	idx := IndexOf(ids, id)
	if idx < 0 {
		return nil, notInList(id)
	}
	out := Clone(ids)
	if idx < len(out)-1 {
		out[idx+1], out[idx] = out[idx], out[idx+1]
	}
	return out, nil
}

// anchorIndex returns where movingID belongs in list according to desired.
func anchorIndex(movingID string, desired, list []string) int {
	pos := IndexOf(desired, movingID)
	if pos < 0 {
		return 0
	}

	for i := pos - 1; i >= 0; i-- {
		if idx := IndexOf(list, desired[i]); idx >= 0 {
			return idx + 1
		}
	}
	for i := pos + 1; i < len(desired); i++ {
		if idx := IndexOf(list, desired[i]); idx >= 0 {
			return idx
		}
	}
	return 0
}

func notInList(id string) error {
	return fmt.Errorf("%w: %q is not in the source list", domain.ErrInvalidMove, id)
}
