// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ycmd

// maxSuggestDistance is the largest edit distance still worth suggesting;
// it catches transpositions and dropped or extra characters.
const maxSuggestDistance = 3

// suggest returns the candidate closest to input, or "" if none is within
// maxSuggestDistance. Ties go to the earlier candidate.
func suggest(input string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if candidate == input {
			continue
		}
		if d := levenshtein(input, candidate); d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best
}

// levenshtein computes the edit distance between a and b over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// One row of the distance matrix, updated per character of rb.
	previous := make([]int, len(ra)+1)
	for i := range previous {
		previous[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		current := make([]int, len(ra)+1)
		current[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous = current
	}
	return previous[len(ra)]
}
