package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User ids come from the identity provider's token subject, so rows are
// created lazily on first authenticated touch rather than by a signup flow.
type User struct {
	Id          string  `gorm:"primaryKey"`
	DisplayName *string `gorm:"null"`
	Email       *string `gorm:"null"`
}

// Name resolves what the leaderboard shows for this user.
func (u *User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return "Player"
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId string) (*User, error) {
	var user User
	result := r.DB.First(&user, "id = ?", userId)
	if result.Error != nil {
		return nil, fmt.Errorf("user with id %s not found", userId)
	}
	return &user, nil
}

// UpsertUser creates the user row if missing and refreshes the email we last
// saw in a verified token. Display names are never overwritten here.
func (r *UserRepository) UpsertUser(user *User) (*User, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email"}),
	}).Create(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to save user: %v", result.Error)
	}
	return user, nil
}
