// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/classrep/models"
)

const (
	idX = "1111111111111111111111111111111111111111111111111111111111111111"
	idY = "2222222222222222222222222222222222222222222222222222222222222222"
	idZ = "3333333333333333333333333333333333333333333333333333333333333333"
	idW = "4444444444444444444444444444444444444444444444444444444444444444"
)

func vote(id, class, first, second string) models.Vote {
	return models.Vote{ID: id, ClassLabel: class, FirstChoice: first, SecondChoice: second}
}

func TestTally_Symmetric(t *testing.T) {
	candidates := []models.Candidate{
		{ID: idX, FullName: "X", ClassLabel: "A"},
		{ID: idY, FullName: "Y", ClassLabel: "A"},
	}
	votes := []models.Vote{
		vote("v1", "A", idX, idY),
		vote("v2", "A", idY, idX),
	}

	res := Tally(votes, candidates)
	assert.Equal(t, map[string]map[string]int{"A": {"X": 3, "Y": 3}}, res.Scores)
	assert.Equal(t, 2, res.BallotCount)

	standings := res.Classes["A"].Standings
	require.Len(t, standings, 2)
	assert.Equal(t, "X", standings[0].Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank, "ties share a rank")
}

func TestTally_Empty(t *testing.T) {
	res := Tally(nil, nil)
	assert.Empty(t, res.Scores)
	assert.NotNil(t, res.Scores)
	assert.Equal(t, 0, res.BallotCount)
}

func TestTally_PerClass(t *testing.T) {
	candidates := []models.Candidate{
		{ID: idX, FullName: "X", ClassLabel: "A"},
		{ID: idY, FullName: "Y", ClassLabel: "A"},
		{ID: idZ, FullName: "Z", ClassLabel: "B"},
		{ID: idW, FullName: "W", ClassLabel: "B"},
	}
	votes := []models.Vote{
		vote("v1", "A", idX, idY),
		vote("v2", "A", idX, idY),
		vote("v3", "A", idY, idX),
		vote("v4", "B", idW, idZ),
	}

	res := Tally(votes, candidates)
	assert.Equal(t, map[string]int{"X": 5, "Y": 4}, res.Scores["A"])
	assert.Equal(t, map[string]int{"W": 2, "Z": 1}, res.Scores["B"])
	assert.Equal(t, 3, res.Classes["A"].BallotCount)
	assert.Equal(t, 1, res.Classes["B"].BallotCount)
	assert.Equal(t, 4, res.BallotCount)

	a := res.Classes["A"].Standings
	assert.Equal(t, []models.Standing{
		{CandidateID: idX, Name: "X", Score: 5, Rank: 1},
		{CandidateID: idY, Name: "Y", Score: 4, Rank: 2},
	}, a)
}

func TestTally_DuplicateNames(t *testing.T) {
	candidates := []models.Candidate{
		{ID: idX, FullName: "Sam Lee", ClassLabel: "A"},
		{ID: idY, FullName: "Sam Lee", ClassLabel: "A"},
		{ID: idZ, FullName: "Sam Lee", ClassLabel: "B"},
	}
	votes := []models.Vote{
		vote("v1", "A", idX, idY),
		vote("v2", "B", idZ, idW),
	}

	res := Tally(votes, candidates)
	assert.Equal(t, map[string]int{
		"Sam Lee (11111111)": 2,
		"Sam Lee (22222222)": 1,
	}, res.Scores["A"])

	// Same name in another class is not ambiguous; unknown ids fall back to the id
	assert.Equal(t, map[string]int{"Sam Lee": 2, idW: 1}, res.Scores["B"])
}

func TestTally_RankOrdering(t *testing.T) {
	candidates := []models.Candidate{
		{ID: idX, FullName: "Xena", ClassLabel: "A"},
		{ID: idY, FullName: "Yuri", ClassLabel: "A"},
		{ID: idZ, FullName: "Abe", ClassLabel: "A"},
	}
	votes := []models.Vote{
		vote("v1", "A", idX, idY), // X2 Y1
		vote("v2", "A", idZ, idY), // Z2 Y1
		vote("v3", "A", idY, idZ), // Y2 Z1
	}

	standings := Tally(votes, candidates).Classes["A"].Standings
	require.Len(t, standings, 3)
	assert.Equal(t, "Yuri", standings[0].Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "Abe", standings[1].Name)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, "Xena", standings[2].Name)
	assert.Equal(t, 3, standings[2].Rank)
}
