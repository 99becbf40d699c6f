package repository

import (
	"time"

	"gorm.io/gorm"
)

// Achievement rows are awarded outside the core scoring path but reference
// races, so the cascade delete has to know about them.
type Achievement struct {
	Id        string `gorm:"primaryKey"`
	UserId    string `gorm:"not null"`
	RaceId    string `gorm:"not null"`
	GroupId   string `gorm:"not null"`
	Title     string `gorm:"not null"`
	CreatedAt time.Time
}

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) GetAchievementsForUser(userId string) ([]*Achievement, error) {
	achievements := make([]*Achievement, 0)
	result := r.DB.Order("created_at DESC").Find(&achievements, "user_id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return achievements, nil
}

func (r *AchievementRepository) Save(achievement *Achievement) (*Achievement, error) {
	result := r.DB.Save(achievement)
	if result.Error != nil {
		return nil, result.Error
	}
	return achievement, nil
}
