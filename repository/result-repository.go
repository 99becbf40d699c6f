package repository

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result is the official finishing order for a race. Index 0 is P1. More
// than 10 entries may be stored but only the first 10 ever score.
type Result struct {
	RaceId    string         `gorm:"primaryKey"`
	Positions pq.StringArray `gorm:"type:text[];not null"`
	UpdatedAt time.Time
}

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) GetResultForRace(raceId string) (*Result, error) {
	var result Result
	res := r.DB.First(&result, "race_id = ?", raceId)
	if res.Error != nil {
		return nil, res.Error
	}
	return &result, nil
}

func (r *ResultRepository) UpsertResult(result *Result) (*Result, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "race_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"positions", "updated_at"}),
	}).Create(result)
	if res.Error != nil {
		return nil, res.Error
	}
	return result, nil
}
