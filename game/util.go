package game

// blockOffsets are the 8 neighbours of a cell in row-major order.
var blockOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// cardinalOffsets are the four player move directions.
var cardinalOffsets = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
