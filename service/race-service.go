package service

import (
	"errors"
	"time"

	"podium/app_error"
	"podium/repository"
	"podium/scoring"

	"gorm.io/gorm"
)

type RaceService struct {
	raceRepository  *repository.RaceRepository
	scoreRepository *repository.ScoreRepository
}

func NewRaceService(db *gorm.DB) *RaceService {
	return &RaceService{
		raceRepository:  repository.NewRaceRepository(db),
		scoreRepository: repository.NewScoreRepository(db),
	}
}

func (s *RaceService) ListRaces() ([]*repository.Race, error) {
	return s.raceRepository.FindAll()
}

func (s *RaceService) GetRaceById(raceId string) (*repository.Race, error) {
	race, err := s.raceRepository.GetRaceById(raceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Race not found")
		}
		return nil, err
	}
	return race, nil
}

func (s *RaceService) GetNextRace() (*repository.Race, error) {
	race, err := s.raceRepository.GetNextRace(time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("No upcoming race found")
		}
		return nil, err
	}
	return race, nil
}

// GetGroupResults returns the per-user scores for one race within a group,
// highest points first.
func (s *RaceService) GetGroupResults(raceId string, groupId string) ([]*repository.Score, error) {
	return s.scoreRepository.GetScoresForRaceAndGroup(raceId, groupId)
}

// GetSeasonStandings folds every stored score for the group into season
// totals. Read-only; score rows are only ever written by finalization.
func (s *RaceService) GetSeasonStandings(groupId string) ([]scoring.StandingsEntry, error) {
	scores, err := s.scoreRepository.GetScoresForGroup(groupId)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeStandings(scores), nil
}
