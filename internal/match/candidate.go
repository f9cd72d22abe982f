package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity a candidate needs to be suggested.
const DefaultThreshold = 0.5

// Candidate is a known key scored against a wanted one.
type Candidate struct {
	Name  string
	Score float64 // Normalized Levenshtein similarity (0-1)
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against want and returns the list
// sorted by score (descending), then by name.
func RankCandidates(want string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		if name == want {
			continue
		}

		score := NormalizedLevenshteinScore(want, name)

		// A shared variant prefix or a case-only difference is a strong hint.
		if strings.EqualFold(want, name) {
			score = 1.0
		}

		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names similar to want.
func Suggest(want string, known []string, limit int) []string {
	ranked := RankCandidates(want, known).AboveThreshold(DefaultThreshold).Top(limit)

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Name
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if empty.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
