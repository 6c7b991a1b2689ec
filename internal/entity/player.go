package entity

type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
	Bot  bool   `json:"bot,omitempty"`
}

func NewHumanPlayer(mark Mark) *Player {
	return &Player{Name: "human", Mark: mark}
}

func NewBotPlayer(mark Mark) *Player {
	return &Player{Name: "engine", Mark: mark, Bot: true}
}
