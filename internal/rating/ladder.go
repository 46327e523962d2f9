package rating

import (
	"math"
)

// ladder is the mutable state of one rating pass: the current rating
// per team and the opponents each team has faced, in encounter order
// with repetition. Single-owner, never shared across goroutines.
type ladder struct {
	base      float64
	k         float64
	ratings   map[string]float64
	opponents map[string][]string
}

func newLadder(base, k float64) *ladder {
	return &ladder{
		base:      base,
		k:         k,
		ratings:   make(map[string]float64),
		opponents: make(map[string][]string),
	}
}

// seed registers roster teams at the base rating so that teams that
// never play still appear in the final mapping
func (l *ladder) seed(teams []string) {
	for _, t := range teams {
		l.rating(t)
	}
}

// rating returns the current rating of a team, inserting the base
// rating on first sight
func (l *ladder) rating(team string) float64 {
	r, ok := l.ratings[team]
	if !ok {
		r = l.base
		l.ratings[team] = r
	}
	return r
}

// apply folds one classified match into the ladder with an all-pairs
// update: every winner is paired against every loser, so a 2v2 match
// yields four pairwise updates. Both directions of each pairing are
// recorded as opponents regardless of result. Returns the number of
// pairwise updates made.
func (l *ladder) apply(result outcome) int {
	pairs := 0
	for _, a := range result.winners {
		for _, b := range result.losers {
			ra := l.rating(a)
			rb := l.rating(b)

			expectedA := 1 / (1 + math.Pow(10, (rb-ra)/400))
			expectedB := 1 - expectedA

			actualA, actualB := 1.0, 0.0
			if result.draw {
				actualA, actualB = 0.5, 0.5
			}

			l.ratings[a] = ra + l.k*(actualA-expectedA)
			l.ratings[b] = rb + l.k*(actualB-expectedB)

			l.opponents[a] = append(l.opponents[a], b)
			l.opponents[b] = append(l.opponents[b], a)
			pairs++
		}
	}
	return pairs
}

// scheduleStrength computes the mean FINAL rating of each team's
// opponents, with repetition. A pure post-pass: call it only after
// every match has been applied. Teams with no opponents default to
// the base rating.
func (l *ladder) scheduleStrength() map[string]float64 {
	strength := make(map[string]float64, len(l.ratings))
	for team := range l.ratings {
		opponents := l.opponents[team]
		if len(opponents) == 0 {
			strength[team] = l.base
			continue
		}
		sum := 0.0
		for _, opponent := range opponents {
			sum += l.ratings[opponent]
		}
		strength[team] = sum / float64(len(opponents))
	}
	return strength
}
