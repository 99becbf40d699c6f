package service

import (
	"errors"
	"time"

	"podium/app_error"
	"podium/repository"

	"gorm.io/gorm"
)

type GroupService struct {
	groupRepository *repository.GroupRepository
	userRepository  *repository.UserRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		groupRepository: repository.NewGroupRepository(db),
		userRepository:  repository.NewUserRepository(db),
	}
}

func (s *GroupService) ListGroupsForUser(userId string) ([]*repository.Group, error) {
	return s.groupRepository.GetGroupsForUser(userId)
}

// JoinByInvite redeems an invite token. The user row is created on the spot
// if this is their first touch, and joining twice is a no-op.
func (s *GroupService) JoinByInvite(userId string, email string, token string) (*repository.Group, error) {
	invite, err := s.groupRepository.GetValidInvite(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("Invite not found or expired")
		}
		return nil, err
	}

	user := &repository.User{Id: userId}
	if email != "" {
		user.Email = &email
	}
	if _, err := s.userRepository.UpsertUser(user); err != nil {
		return nil, err
	}

	member := &repository.GroupMember{
		GroupId:  invite.GroupId,
		UserId:   userId,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepository.UpsertMember(member); err != nil {
		return nil, err
	}
	return invite.Group, nil
}

// GetDefaultGroup returns the group the user joined first, or nil if they
// belong to none.
func (s *GroupService) GetDefaultGroup(userId string) (*repository.Group, error) {
	membership, err := s.groupRepository.GetEarliestMembership(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return membership.Group, nil
}
