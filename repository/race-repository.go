package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RaceStatus string

const (
	RaceStatusScheduled RaceStatus = "scheduled"
	RaceStatusLocked    RaceStatus = "locked"
	RaceStatusFinalized RaceStatus = "finalized"
)

// Status only moves forward. Finalizing an already finalized race is allowed
// so mistaken results can be corrected with a full recompute.
var raceStatusTransitions = map[RaceStatus][]RaceStatus{
	RaceStatusScheduled: {RaceStatusLocked, RaceStatusFinalized},
	RaceStatusLocked:    {RaceStatusFinalized},
	RaceStatusFinalized: {RaceStatusFinalized},
}

func (s RaceStatus) CanTransitionTo(next RaceStatus) bool {
	for _, allowed := range raceStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Race struct {
	Id            string     `gorm:"primaryKey"`
	Season        int        `gorm:"not null;uniqueIndex:idx_races_season_round"`
	Round         int        `gorm:"not null;uniqueIndex:idx_races_season_round"`
	Name          string     `gorm:"not null"`
	Circuit       string     `gorm:"not null"`
	Q1StartTime   time.Time  `gorm:"not null"`
	RaceStartTime time.Time  `gorm:"not null"`
	Status        RaceStatus `gorm:"not null;default:scheduled"`
}

type RaceRepository struct {
	DB *gorm.DB
}

func NewRaceRepository(db *gorm.DB) *RaceRepository {
	return &RaceRepository{DB: db}
}

func (r *RaceRepository) GetRaceById(raceId string) (*Race, error) {
	var race Race
	result := r.DB.First(&race, "id = ?", raceId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &race, nil
}

func (r *RaceRepository) GetRaceBySeasonAndRound(season int, round int) (*Race, error) {
	var race Race
	result := r.DB.First(&race, "season = ? AND round = ?", season, round)
	if result.Error != nil {
		return nil, result.Error
	}
	return &race, nil
}

func (r *RaceRepository) FindAll() ([]*Race, error) {
	var races []*Race
	result := r.DB.Order("season DESC, round DESC").Find(&races)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find races: %v", result.Error)
	}
	return races, nil
}

func (r *RaceRepository) GetNextRace(now time.Time) (*Race, error) {
	var race Race
	result := r.DB.Where("race_start_time > ?", now).Order("race_start_time ASC").First(&race)
	if result.Error != nil {
		return nil, result.Error
	}
	return &race, nil
}

func (r *RaceRepository) Save(race *Race) (*Race, error) {
	result := r.DB.Save(race)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save race: %v", result.Error)
	}
	return race, nil
}

// DeleteWithDependents removes everything referencing the race before the
// race row itself, in one transaction.
func (r *RaceRepository) DeleteWithDependents(raceId string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&Session{},
			&Vote{},
			&Score{},
			&Result{},
			&Achievement{},
		} {
			if err := tx.Where("race_id = ?", raceId).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Race{}, "id = ?", raceId).Error
	})
}
