package service

import (
	"testing"
	"time"

	"podium/app_error"
	"podium/repository"

	"github.com/stretchr/testify/assert"
)

const adminEmail = "boss@example.com"

func newAdminService() *AdminService {
	return NewAdminService(db, []string{adminEmail})
}

func TestSetRaceResultsRequiresAdmin(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	adminService := newAdminService()

	_, err := adminService.SetRaceResults(race.Id, testRanking, "intruder@example.com")
	assert.True(t, app_error.IsKind(err, app_error.KindForbidden))

	_, err = adminService.SetRaceResults(race.Id, testRanking, "")
	assert.True(t, app_error.IsKind(err, app_error.KindForbidden))

	// nothing was written
	stored, err := repository.NewRaceRepository(db).GetRaceById(race.Id)
	assert.Nil(t, err)
	assert.Equal(t, repository.RaceStatusScheduled, stored.Status)
	_, err = repository.NewResultRepository(db).GetResultForRace(race.Id)
	assert.NotNil(t, err)
}

func TestSetRaceResultsComputesScores(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	createUser("user-1", "Alice")
	voteRepository := repository.NewVoteRepository(db)
	adminService := newAdminService()

	ranking := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	_, err := voteRepository.UpsertVote(voteFor("user-1", race.Id, "group-1", ranking))
	assert.Nil(t, err)

	positions := []string{"A", "B", "X", "D", "Y", "F", "G", "Z", "I", "J"}
	result, err := adminService.SetRaceResults(race.Id, positions, adminEmail)
	assert.Nil(t, err)
	assert.Equal(t, []string(result.Positions), positions)

	stored, err := repository.NewRaceRepository(db).GetRaceById(race.Id)
	assert.Nil(t, err)
	assert.Equal(t, repository.RaceStatusFinalized, stored.Status)

	scores, err := repository.NewScoreRepository(db).GetScoresForRaceAndGroup(race.Id, "group-1")
	assert.Nil(t, err)
	assert.Len(t, scores, 1)
	// 25+18+0+12+0+8+6+0+2+1
	assert.Equal(t, 72, scores[0].Points)
	assert.Equal(t, 0, scores[0].RankChange)
}

func TestSetRaceResultsScoresVotesAcrossGroups(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	createUser("user-1", "Alice")
	voteRepository := repository.NewVoteRepository(db)
	adminService := newAdminService()

	_, err := voteRepository.UpsertVote(voteFor("user-1", race.Id, "group-1", testRanking))
	assert.Nil(t, err)
	_, err = voteRepository.UpsertVote(voteFor("user-1", race.Id, "group-2", testRanking))
	assert.Nil(t, err)

	_, err = adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)

	for _, groupId := range []string{"group-1", "group-2"} {
		scores, err := repository.NewScoreRepository(db).GetScoresForRaceAndGroup(race.Id, groupId)
		assert.Nil(t, err)
		assert.Len(t, scores, 1)
		assert.Equal(t, 101, scores[0].Points)
	}
}

func TestSetRaceResultsIsIdempotent(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	createUser("user-1", "Alice")
	voteRepository := repository.NewVoteRepository(db)
	adminService := newAdminService()

	_, err := voteRepository.UpsertVote(voteFor("user-1", race.Id, "group-1", testRanking))
	assert.Nil(t, err)

	_, err = adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)
	_, err = adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)

	scores, err := repository.NewScoreRepository(db).GetScoresForRaceAndGroup(race.Id, "group-1")
	assert.Nil(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, 101, scores[0].Points)
}

func TestSetRaceResultsCorrectionOverwritesScores(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	createUser("user-1", "Alice")
	voteRepository := repository.NewVoteRepository(db)
	adminService := newAdminService()

	_, err := voteRepository.UpsertVote(voteFor("user-1", race.Id, "group-1", testRanking))
	assert.Nil(t, err)

	_, err = adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)

	// corrected result shares no positions with the vote
	corrected := []string{"K", "L", "M", "N", "O", "P", "Q", "R", "S", "T"}
	_, err = adminService.SetRaceResults(race.Id, corrected, adminEmail)
	assert.Nil(t, err)

	scores, err := repository.NewScoreRepository(db).GetScoresForRaceAndGroup(race.Id, "group-1")
	assert.Nil(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, 0, scores[0].Points)

	result, err := repository.NewResultRepository(db).GetResultForRace(race.Id)
	assert.Nil(t, err)
	assert.Equal(t, []string(result.Positions), corrected)
}

func TestSetRaceResultsUnknownRace(t *testing.T) {
	defer TearDown()
	adminService := newAdminService()

	_, err := adminService.SetRaceResults("no-such-race", testRanking, adminEmail)
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))
}

func TestCreateRaceValidatesTimes(t *testing.T) {
	defer TearDown()
	adminService := newAdminService()

	_, err := adminService.CreateRace(&RaceCreate{
		Season:        2026,
		Round:         1,
		Name:          "Monaco Grand Prix",
		Circuit:       "Monaco",
		Q1StartTime:   "not-a-time",
		RaceStartTime: time.Now().Format(time.RFC3339),
	}, adminEmail)
	assert.True(t, app_error.IsKind(err, app_error.KindValidation))

	race, err := adminService.CreateRace(&RaceCreate{
		Season:        2026,
		Round:         1,
		Name:          "Monaco Grand Prix",
		Circuit:       "Monaco",
		Q1StartTime:   time.Now().Add(time.Hour).Format(time.RFC3339),
		RaceStartTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, adminEmail)
	assert.Nil(t, err)
	assert.Equal(t, repository.RaceStatusScheduled, race.Status)
}

func TestUpdateRaceRejectsBackwardStatus(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	adminService := newAdminService()

	_, err := adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)

	scheduled := repository.RaceStatusScheduled
	_, err = adminService.UpdateRace(race.Id, &RaceUpdate{Status: &scheduled}, adminEmail)
	assert.True(t, app_error.IsKind(err, app_error.KindValidation))
}

func TestDeleteRaceCascades(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	createUser("user-1", "Alice")
	adminService := newAdminService()

	_, err := repository.NewVoteRepository(db).UpsertVote(voteFor("user-1", race.Id, "group-1", testRanking))
	assert.Nil(t, err)
	_, err = adminService.SetRaceResults(race.Id, testRanking, adminEmail)
	assert.Nil(t, err)
	_, err = adminService.SetRaceSession(race.Id, repository.SessionTypeQualifying, time.Now().Add(time.Hour).Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)
	_, err = repository.NewAchievementRepository(db).Save(&repository.Achievement{
		Id: "ach-1", UserId: "user-1", RaceId: race.Id, GroupId: "group-1", Title: "Perfect podium",
	})
	assert.Nil(t, err)

	err = adminService.DeleteRace(race.Id, adminEmail)
	assert.Nil(t, err)

	_, err = repository.NewRaceRepository(db).GetRaceById(race.Id)
	assert.NotNil(t, err)
	votes, err := repository.NewVoteRepository(db).GetVotesForRace(race.Id)
	assert.Nil(t, err)
	assert.Empty(t, votes)
	scores, err := repository.NewScoreRepository(db).GetScoresForRaceAndGroup(race.Id, "group-1")
	assert.Nil(t, err)
	assert.Empty(t, scores)
	_, err = repository.NewResultRepository(db).GetResultForRace(race.Id)
	assert.NotNil(t, err)
	sessions, err := repository.NewSessionRepository(db).GetSessionsForRace(race.Id)
	assert.Nil(t, err)
	assert.Empty(t, sessions)
	achievements, err := repository.NewAchievementRepository(db).GetAchievementsForUser("user-1")
	assert.Nil(t, err)
	assert.Empty(t, achievements)
}

func TestSetRaceSessionMovesLockBoundary(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	adminService := newAdminService()

	newQ1 := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	session, err := adminService.SetRaceSession(race.Id, repository.SessionTypeQualifying, newQ1.Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)
	assert.Equal(t, repository.SessionTypeQualifying, session.Type)

	stored, err := repository.NewRaceRepository(db).GetRaceById(race.Id)
	assert.Nil(t, err)
	assert.True(t, stored.Q1StartTime.Equal(newQ1))

	// updating the same session type replaces, not duplicates
	laterQ1 := newQ1.Add(time.Hour)
	_, err = adminService.SetRaceSession(race.Id, repository.SessionTypeQualifying, laterQ1.Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)
	sessions, err := adminService.ListRaceSessions(race.Id, adminEmail)
	assert.Nil(t, err)
	assert.Len(t, sessions, 1)
	assert.True(t, sessions[0].StartTime.Equal(laterQ1))
}

func TestSetRaceSessionMovesRaceStart(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	adminService := newAdminService()

	newStart := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	_, err := adminService.SetRaceSession(race.Id, repository.SessionTypeRace, newStart.Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)

	stored, err := repository.NewRaceRepository(db).GetRaceById(race.Id)
	assert.Nil(t, err)
	assert.True(t, stored.RaceStartTime.Equal(newStart))
}

func TestListRaceSessionsOrderedByStartTime(t *testing.T) {
	defer TearDown()
	race := createRace(1, time.Hour, 48*time.Hour)
	adminService := newAdminService()

	base := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	_, err := adminService.SetRaceSession(race.Id, repository.SessionTypeRace, base.Add(2*time.Hour).Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)
	_, err = adminService.SetRaceSession(race.Id, repository.SessionTypePractice, base.Add(-2*time.Hour).Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)
	_, err = adminService.SetRaceSession(race.Id, repository.SessionTypeQualifying, base.Format(time.RFC3339), adminEmail)
	assert.Nil(t, err)

	sessions, err := adminService.ListRaceSessions(race.Id, adminEmail)
	assert.Nil(t, err)
	assert.Len(t, sessions, 3)
	assert.Equal(t, repository.SessionTypePractice, sessions[0].Type)
	assert.Equal(t, repository.SessionTypeQualifying, sessions[1].Type)
	assert.Equal(t, repository.SessionTypeRace, sessions[2].Type)
}

func TestCreateGroupAndInvite(t *testing.T) {
	defer TearDown()
	adminService := newAdminService()

	group, err := adminService.CreateGroup("Paddock Pals", "user-1", adminEmail, adminEmail)
	assert.Nil(t, err)
	assert.Equal(t, "Paddock Pals", group.Name)

	invite, err := adminService.CreateGroupInvite(group.Id, adminEmail)
	assert.Nil(t, err)
	assert.Equal(t, group.Id, invite.GroupId)
	assert.True(t, invite.ExpiresAt.After(time.Now()))

	_, err = adminService.CreateGroupInvite("no-such-group", adminEmail)
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))
}
