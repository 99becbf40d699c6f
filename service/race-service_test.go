package service

import (
	"testing"
	"time"

	"podium/app_error"
	"podium/repository"

	"github.com/stretchr/testify/assert"
)

func TestGetSeasonStandingsSumsScores(t *testing.T) {
	defer TearDown()
	raceOne := createRace(1, -72*time.Hour, -48*time.Hour)
	raceTwo := createRace(2, -24*time.Hour, -2*time.Hour)
	createUser("user-1", "Alice")
	createUser("user-2", "Bob")
	scoreRepository := repository.NewScoreRepository(db)

	for _, score := range []*repository.Score{
		{UserId: "user-1", RaceId: raceOne.Id, GroupId: "group-1", Points: 40},
		{UserId: "user-1", RaceId: raceTwo.Id, GroupId: "group-1", Points: 30},
		{UserId: "user-2", RaceId: raceOne.Id, GroupId: "group-1", Points: 60},
		// different group, must not leak into group-1 standings
		{UserId: "user-2", RaceId: raceTwo.Id, GroupId: "group-2", Points: 99},
	} {
		assert.Nil(t, scoreRepository.UpsertScore(score))
	}

	standings, err := NewRaceService(db).GetSeasonStandings("group-1")
	assert.Nil(t, err)
	assert.Len(t, standings, 2)
	assert.Equal(t, "user-1", standings[0].UserId)
	assert.Equal(t, "Alice", standings[0].Name)
	assert.Equal(t, 70, standings[0].Points)
	assert.Equal(t, "user-2", standings[1].UserId)
	assert.Equal(t, 60, standings[1].Points)
}

func TestGetGroupResultsOrderedByPoints(t *testing.T) {
	defer TearDown()
	race := createRace(1, -24*time.Hour, -2*time.Hour)
	createUser("user-1", "Alice")
	createUser("user-2", "Bob")
	scoreRepository := repository.NewScoreRepository(db)

	assert.Nil(t, scoreRepository.UpsertScore(&repository.Score{UserId: "user-1", RaceId: race.Id, GroupId: "group-1", Points: 12}))
	assert.Nil(t, scoreRepository.UpsertScore(&repository.Score{UserId: "user-2", RaceId: race.Id, GroupId: "group-1", Points: 55}))

	results, err := NewRaceService(db).GetGroupResults(race.Id, "group-1")
	assert.Nil(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "user-2", results[0].UserId)
	assert.Equal(t, "Bob", results[0].User.Name())
	assert.Equal(t, "user-1", results[1].UserId)
}

func TestListRacesNewestFirst(t *testing.T) {
	defer TearDown()
	createRace(1, -72*time.Hour, -48*time.Hour)
	createRace(2, time.Hour, 48*time.Hour)

	races, err := NewRaceService(db).ListRaces()
	assert.Nil(t, err)
	assert.Len(t, races, 2)
	assert.Equal(t, 2, races[0].Round)
	assert.Equal(t, 1, races[1].Round)
}

func TestGetNextRace(t *testing.T) {
	defer TearDown()
	createRace(1, -72*time.Hour, -48*time.Hour)
	upcoming := createRace(2, 24*time.Hour, 48*time.Hour)
	createRace(3, 7*24*time.Hour, 8*24*time.Hour)

	race, err := NewRaceService(db).GetNextRace()
	assert.Nil(t, err)
	assert.Equal(t, upcoming.Id, race.Id)
}

func TestGetNextRaceNoneUpcoming(t *testing.T) {
	defer TearDown()
	createRace(1, -72*time.Hour, -48*time.Hour)

	_, err := NewRaceService(db).GetNextRace()
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))
}
