package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Score is derived data: it must always be reproducible by replaying the
// vote and the official result through the scoring function. The
// finalization workflow is its only write path.
type Score struct {
	UserId     string `gorm:"primaryKey"`
	RaceId     string `gorm:"primaryKey"`
	GroupId    string `gorm:"primaryKey"`
	Points     int    `gorm:"not null"`
	RankChange int    `gorm:"not null;default:0"`
	UpdatedAt  time.Time

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) GetScoresForRaceAndGroup(raceId string, groupId string) ([]*Score, error) {
	scores := make([]*Score, 0)
	result := r.DB.Preload("User").Order("points DESC").Find(&scores, "race_id = ? AND group_id = ?", raceId, groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return scores, nil
}

func (r *ScoreRepository) GetScoresForGroup(groupId string) ([]*Score, error) {
	scores := make([]*Score, 0)
	result := r.DB.Preload("User").Find(&scores, "group_id = ?", groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return scores, nil
}

// UpsertScore replaces the points for the key, never accumulates. RankChange
// is written on create only; no update rule computes it yet.
func (r *ScoreRepository) UpsertScore(score *Score) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "race_id"}, {Name: "group_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"points", "updated_at"}),
	}).Create(score)
	return result.Error
}
