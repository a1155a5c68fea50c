package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult is one seat's outcome over a full simulated game
type GameResult struct {
	Seed     int64 // RNG seed of the game (for replay)
	Seat     int   // 0-based seat
	Strategy string
	Total    int // Final cumulative score
	Hits     int // Rounds where the bet matched the points exactly
	Rounds   int
	Won      bool // Shared first place counts as a win
}

// Statistics aggregates game results for one strategy
type Statistics struct {
	Games  int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // All totals, for median/percentile calculation

	Hits   int
	Rounds int
	Wins   int

	// SeatGames counts results per seat, to spot positional bias
	SeatGames map[int]int
}

// Mean returns the average final score per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Sum / float64(s.Games)
}

// Variance returns the sample variance of final scores
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of final scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HitRate is the share of rounds where the bet was exact
func (s *Statistics) HitRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Rounds)
}

// WinRate is the share of games finished in first place
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Add incorporates a game result
func (s *Statistics) Add(result GameResult) {
	total := float64(result.Total)
	s.Games++
	s.Sum += total
	s.Sum2 += total * total
	s.Values = append(s.Values, total)

	s.Hits += result.Hits
	s.Rounds += result.Rounds
	if result.Won {
		s.Wins++
	}

	if s.SeatGames == nil {
		s.SeatGames = make(map[int]int)
	}
	s.SeatGames[result.Seat]++
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Hits += other.Hits
	s.Rounds += other.Rounds
	s.Wins += other.Wins

	if s.SeatGames == nil {
		s.SeatGames = make(map[int]int)
	}
	for seat, n := range other.SeatGames {
		s.SeatGames[seat] += n
	}
}

// Median returns the median final score
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the final score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if s.Hits > s.Rounds {
		return fmt.Errorf("hits (%d) exceed rounds (%d)", s.Hits, s.Rounds)
	}
	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}

	seatGames := 0
	for _, n := range s.SeatGames {
		seatGames += n
	}
	if seatGames != s.Games {
		return fmt.Errorf("seat games total (%d) does not match games count (%d)", seatGames, s.Games)
	}
	return nil
}
