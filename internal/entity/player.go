package entity

type PlayerKind uint8

const (
	Human PlayerKind = iota
	AutomatedMinimax
	AutomatedNaiveBayes
	AutomatedRandom
)

func (that PlayerKind) String() string {
	switch that {
	case Human:
		return "human"
	case AutomatedMinimax:
		return "minimax"
	case AutomatedNaiveBayes:
		return "naive-bayes"
	case AutomatedRandom:
		return "random"
	default:
		return "unknown"
	}
}

func (that PlayerKind) IsAutomated() bool {
	return that == AutomatedMinimax || that == AutomatedNaiveBayes || that == AutomatedRandom
}

// PlayerIndex identifies one of the two seats of a game.
type PlayerIndex uint8

const (
	PlayerOne PlayerIndex = iota
	PlayerTwo
)

func (that PlayerIndex) Other() PlayerIndex {
	if that == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (that PlayerIndex) String() string {
	if that == PlayerOne {
		return "Player 1"
	}
	return "Player 2"
}

type Player struct {
	Index PlayerIndex `json:"index"`
	Kind  PlayerKind  `json:"kind"`
	Mark  Cell        `json:"mark"`
}
