package game

// ComputeScore returns a player's score for one round. Hitting the bet
// exactly pays the bet plus two; any miss costs the distance between bet and
// points.
func ComputeScore(bet, points int) int {
	if bet == points {
		return bet + 2
	} else if bet < points {
		return bet - points
	}
	return points - bet
}
