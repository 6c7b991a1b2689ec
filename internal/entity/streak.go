package entity

// Streaks lists the cell indices of every winning line: both diagonals, then rows
// top to bottom, then columns left to right. Winner scans them in this order.
var Streaks = [8][3]int{
	{0, 4, 8},
	{2, 4, 6},
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
}

// Streaks returns the cells along every winning line, in Streaks order.
func (that Board) Streaks() [8][3]Mark {
	var streaks [8][3]Mark
	for i, combo := range Streaks {
		streaks[i] = [3]Mark{that[combo[0]], that[combo[1]], that[combo[2]]}
	}
	return streaks
}

// Winner returns the mark filling the first uniform non-empty streak.
// A board with two winning lines of different marks cannot arise in legal play;
// for such a board the earlier line in Streaks order wins.
func (that Board) Winner() (Mark, bool) {
	for _, streak := range that.Streaks() {
		a, b, c := streak[0], streak[1], streak[2]
		if a != Empty && a == b && b == c {
			return a, true
		}
	}
	return Empty, false
}

// Finished reports whether the board has a winner or no empty cell left.
func (that Board) Finished() bool {
	if _, ok := that.Winner(); ok {
		return true
	}
	return that.IsFull()
}
