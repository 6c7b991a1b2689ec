package entity

// Stats counts finished games by outcome.
type Stats struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that Stats) Total() int {
	return that.XWins + that.OWins + that.Draws
}

// Add counts games that ended with winner ("X", "O" or "-"). Other values are ignored.
func (that *Stats) Add(winner string, count int) {
	switch winner {
	case PlayerX:
		that.XWins += count
	case PlayerO:
		that.OWins += count
	case PlayerTie:
		that.Draws += count
	}
}
