package service

import (
	"errors"
	"time"

	"podium/app_error"
	"podium/metrics"
	"podium/repository"
	"podium/utils"

	"gorm.io/gorm"
)

type VoteService struct {
	voteRepository *repository.VoteRepository
	raceRepository *repository.RaceRepository
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{
		voteRepository: repository.NewVoteRepository(db),
		raceRepository: repository.NewRaceRepository(db),
	}
}

// SubmitVote validates and upserts a prediction. The lock check compares a
// single read of "now" against the race's qualifying start; a submission at
// or after that instant fails without touching the stored vote.
func (s *VoteService) SubmitVote(userId string, raceId string, groupId string, ranking []string) (*repository.Vote, error) {
	if len(ranking) != 10 {
		metrics.VotesRejectedCounter.WithLabelValues("length").Inc()
		return nil, app_error.Validation("Ranking must include exactly 10 drivers")
	}
	if utils.HasDuplicates(ranking) {
		metrics.VotesRejectedCounter.WithLabelValues("duplicate").Inc()
		return nil, app_error.Validation("Ranking must not contain duplicate drivers")
	}

	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.VotesRejectedCounter.WithLabelValues("race_not_found").Inc()
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}

	if !time.Now().Before(race.Q1StartTime) {
		metrics.VotesRejectedCounter.WithLabelValues("locked").Inc()
		return nil, app_error.Locked("Voting is locked")
	}

	vote := &repository.Vote{
		UserId:  userId,
		RaceId:  raceId,
		GroupId: groupId,
		Ranking: ranking,
	}
	vote, err = s.voteRepository.UpsertVote(vote)
	if err != nil {
		return nil, err
	}
	metrics.VotesSubmittedCounter.Inc()
	return vote, nil
}

// GetVote is a pure lookup and works regardless of lock state. A missing
// vote is not an error; the caller gets nil.
func (s *VoteService) GetVote(userId string, raceId string, groupId string) (*repository.Vote, error) {
	vote, err := s.voteRepository.GetVote(userId, raceId, groupId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return vote, nil
}
