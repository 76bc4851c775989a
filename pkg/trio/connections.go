package trio

// connections maps each card number to the numbers printed in its corners.
// Only SPICY mode reads this table. The neighbor ranges are truncated at the
// extremes (1 and 12 have two neighbors, 2 and 11 have three); that asymmetry
// is part of the official rules and must not be smoothed out.
var connections = map[int][]int{
	1:  {2, 3},
	2:  {1, 3, 4},
	3:  {1, 2, 4, 5},
	4:  {2, 3, 5, 6},
	5:  {3, 4, 6, 7},
	6:  {4, 5, 7, 8},
	7:  {5, 6, 8, 9},
	8:  {6, 7, 9, 10},
	9:  {7, 8, 10, 11},
	10: {8, 9, 11, 12},
	11: {9, 10, 12},
	12: {10, 11},
}

// isConnected returns true if b appears in a's connection list
func isConnected(a, b int) bool {
	for _, n := range connections[a] {
		if n == b {
			return true
		}
	}

	return false
}
