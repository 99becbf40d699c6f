package scoring

// pointsByPosition awards exact-position matches only. No partial credit for
// the right driver in the wrong position.
var pointsByPosition = map[int]int{
	1:  25,
	2:  18,
	3:  15,
	4:  12,
	5:  10,
	6:  8,
	7:  6,
	8:  4,
	9:  2,
	10: 1,
}

// MaxScore is the total for a perfect top-10 prediction.
const MaxScore = 25 + 18 + 15 + 12 + 10 + 8 + 6 + 4 + 2 + 1

// ComputeScore compares a predicted ranking against the official finishing
// order. Only positions 1..10 that exist in both sequences are considered,
// so short or over-long inputs are tolerated rather than rejected; ranking
// well-formedness is enforced at submission time.
func ComputeScore(ranking []string, positions []string) int {
	score := 0
	for index, driver := range positions {
		position := index + 1
		if position > 10 {
			break
		}
		if index < len(ranking) && ranking[index] == driver {
			score += pointsByPosition[position]
		}
	}
	return score
}
