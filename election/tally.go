// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/classrep/models"
)

// Points per preference
const (
	FirstChoicePoints  = 2
	SecondChoicePoints = 1
)

// Tally aggregates votes into per-class scores.
//
// Votes reference candidates by id; names are resolved here. When two
// candidates in a class share a name, both are shown with the first 8
// characters of their id appended so the name-keyed map stays unambiguous.
func Tally(votes []models.Vote, candidates []models.Candidate) models.Results {
	byID := make(map[string]models.Candidate, len(candidates))
	nameCount := make(map[string]map[string]int)
	for _, c := range candidates {
		byID[c.ID] = c
		if nameCount[c.ClassLabel] == nil {
			nameCount[c.ClassLabel] = make(map[string]int)
		}
		nameCount[c.ClassLabel][c.FullName]++
	}

	scores := make(map[string]map[string]int)
	ballots := make(map[string]int)
	for _, v := range votes {
		if scores[v.ClassLabel] == nil {
			scores[v.ClassLabel] = make(map[string]int)
		}
		scores[v.ClassLabel][v.FirstChoice] += FirstChoicePoints
		scores[v.ClassLabel][v.SecondChoice] += SecondChoicePoints
		ballots[v.ClassLabel]++
	}

	results := models.Results{
		Scores:      make(map[string]map[string]int, len(scores)),
		Classes:     make(map[string]models.ClassResult, len(scores)),
		BallotCount: len(votes),
	}

	for class, byCandidate := range scores {
		standings := make([]models.Standing, 0, len(byCandidate))
		named := make(map[string]int, len(byCandidate))

		for id, score := range byCandidate {
			name := displayName(byID, nameCount[class], id)
			named[name] = score
			standings = append(standings, models.Standing{
				CandidateID: id,
				Name:        name,
				Score:       score,
			})
		}

		sort.Slice(standings, func(i, j int) bool {
			a, b := standings[i], standings[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.CandidateID < b.CandidateID
		})
		for i := range standings {
			if i > 0 && standings[i].Score == standings[i-1].Score {
				standings[i].Rank = standings[i-1].Rank
			} else {
				standings[i].Rank = i + 1
			}
		}

		results.Scores[class] = named
		results.Classes[class] = models.ClassResult{
			Standings:   standings,
			BallotCount: ballots[class],
		}
	}

	return results
}

func displayName(byID map[string]models.Candidate, names map[string]int, id string) string {
	c, ok := byID[id]
	if !ok {
		return id
	}
	if names[c.FullName] > 1 {
		return fmt.Sprintf("%s (%s)", c.FullName, shortID(id))
	}
	return c.FullName
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
