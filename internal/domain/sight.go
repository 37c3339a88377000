package domain

// InLineOfSight reports whether a player standing on observer can see a player
// standing on target. Sight runs along the observer's lane only, so the
// relation is not symmetric.
func InLineOfSight(observer, target int) bool {
	diff := target - observer
	if diff > LaneLength {
		return false
	}

	past := observer % LaneLength
	// On a corner the whole forward lane is visible.
	if past == 0 {
		return diff >= 0
	}

	if diff >= 0 {
		return diff < LaneLength+1-past
	}
	return -diff <= past
}
