package repository

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Vote holds a user's predicted finishing order for one race within one
// group. Index 0 of Ranking is the predicted P1.
type Vote struct {
	UserId    string         `gorm:"primaryKey"`
	RaceId    string         `gorm:"primaryKey"`
	GroupId   string         `gorm:"primaryKey"`
	Ranking   pq.StringArray `gorm:"type:text[];not null"`
	UpdatedAt time.Time
}

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) GetVote(userId string, raceId string, groupId string) (*Vote, error) {
	var vote Vote
	result := r.DB.First(&vote, "user_id = ? AND race_id = ? AND group_id = ?", userId, raceId, groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &vote, nil
}

func (r *VoteRepository) GetVotesForRace(raceId string) ([]*Vote, error) {
	votes := make([]*Vote, 0)
	result := r.DB.Find(&votes, "race_id = ?", raceId)
	if result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// UpsertVote fully replaces any prior ranking for the key. Last write wins.
func (r *VoteRepository) UpsertVote(vote *Vote) (*Vote, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "race_id"}, {Name: "group_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ranking", "updated_at"}),
	}).Create(vote)
	if result.Error != nil {
		return nil, result.Error
	}
	return vote, nil
}
