package repository

import (
	"time"

	"gorm.io/gorm"
)

type SessionType string

const (
	SessionTypePractice   SessionType = "practice"
	SessionTypeQualifying SessionType = "qualifying"
	SessionTypeRace       SessionType = "race"
)

func IsValidSessionType(t SessionType) bool {
	switch t {
	case SessionTypePractice, SessionTypeQualifying, SessionTypeRace:
		return true
	}
	return false
}

type Session struct {
	Id        string      `gorm:"primaryKey"`
	RaceId    string      `gorm:"not null;uniqueIndex:idx_sessions_race_type"`
	Type      SessionType `gorm:"not null;uniqueIndex:idx_sessions_race_type"`
	StartTime time.Time   `gorm:"not null"`

	Race *Race `gorm:"foreignKey:RaceId;constraint:OnDelete:CASCADE"`
}

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) GetSessionByRaceAndType(raceId string, sessionType SessionType) (*Session, error) {
	var session Session
	result := r.DB.First(&session, "race_id = ? AND type = ?", raceId, sessionType)
	if result.Error != nil {
		return nil, result.Error
	}
	return &session, nil
}

func (r *SessionRepository) GetSessionsForRace(raceId string) ([]*Session, error) {
	sessions := make([]*Session, 0)
	result := r.DB.Order("start_time ASC").Find(&sessions, "race_id = ?", raceId)
	if result.Error != nil {
		return nil, result.Error
	}
	return sessions, nil
}

func (r *SessionRepository) Save(session *Session) (*Session, error) {
	result := r.DB.Save(session)
	if result.Error != nil {
		return nil, result.Error
	}
	return session, nil
}
