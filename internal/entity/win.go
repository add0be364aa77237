package entity

// WinRecord describes a completed line.
type WinRecord struct {
	Mark  Cell `json:"mark"`
	Start Move `json:"start"`
	End   Move `json:"end"`
}

// WinLines are scanned in order: rows top to bottom, columns left to right,
// main diagonal, then the anti-diagonal from bottom-left to top-right.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// CheckWin reports the first completed line in scan order.
// A full board without a line is a draw and reports false.
func (that *Board) CheckWin() (WinRecord, bool) {
	for _, line := range WinLines {
		a, b, c := that.Get(line[0]), that.Get(line[1]), that.Get(line[2])
		if a != Empty && a == b && b == c {
			return WinRecord{Mark: a, Start: line[0], End: line[2]}, true
		}
	}

	return WinRecord{}, false
}
