package service

import (
	"testing"
	"time"

	"podium/app_error"
	"podium/repository"

	"github.com/stretchr/testify/assert"
)

func createGroupWithInvite(t *testing.T, name string, expiresAt time.Time) (*repository.Group, *repository.GroupInvite) {
	groupRepository := repository.NewGroupRepository(db)
	group, err := groupRepository.SaveGroup(&repository.Group{Id: "group-" + name, Name: name, CreatedAt: time.Now()})
	assert.Nil(t, err)
	invite, err := groupRepository.SaveInvite(&repository.GroupInvite{Token: "token-" + name, GroupId: group.Id, ExpiresAt: expiresAt})
	assert.Nil(t, err)
	return group, invite
}

func TestJoinByInvite(t *testing.T) {
	defer TearDown()
	group, invite := createGroupWithInvite(t, "Paddock Club", time.Now().Add(24*time.Hour))
	groupService := NewGroupService(db)

	joined, err := groupService.JoinByInvite("user-1", "alice@example.com", invite.Token)
	assert.Nil(t, err)
	assert.Equal(t, group.Id, joined.Id)

	groups, err := groupService.ListGroupsForUser("user-1")
	assert.Nil(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "Paddock Club", groups[0].Name)

	// the user row is created on first join
	user, err := repository.NewUserRepository(db).GetUserById("user-1")
	assert.Nil(t, err)
	assert.Equal(t, "alice@example.com", *user.Email)
}

func TestJoinByInviteIsIdempotent(t *testing.T) {
	defer TearDown()
	_, invite := createGroupWithInvite(t, "Paddock Club", time.Now().Add(24*time.Hour))
	groupService := NewGroupService(db)

	_, err := groupService.JoinByInvite("user-1", "alice@example.com", invite.Token)
	assert.Nil(t, err)
	_, err = groupService.JoinByInvite("user-1", "alice@example.com", invite.Token)
	assert.Nil(t, err)

	groups, err := groupService.ListGroupsForUser("user-1")
	assert.Nil(t, err)
	assert.Len(t, groups, 1)
}

func TestJoinByExpiredInvite(t *testing.T) {
	defer TearDown()
	_, invite := createGroupWithInvite(t, "Paddock Club", time.Now().Add(-time.Minute))
	groupService := NewGroupService(db)

	_, err := groupService.JoinByInvite("user-1", "alice@example.com", invite.Token)
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))

	groups, err := groupService.ListGroupsForUser("user-1")
	assert.Nil(t, err)
	assert.Len(t, groups, 0)
}

func TestJoinByUnknownInvite(t *testing.T) {
	defer TearDown()
	groupService := NewGroupService(db)

	_, err := groupService.JoinByInvite("user-1", "alice@example.com", "no-such-token")
	assert.True(t, app_error.IsKind(err, app_error.KindNotFound))
}

func TestGetDefaultGroupIsEarliestJoined(t *testing.T) {
	defer TearDown()
	_, firstInvite := createGroupWithInvite(t, "First", time.Now().Add(24*time.Hour))
	_, secondInvite := createGroupWithInvite(t, "Second", time.Now().Add(24*time.Hour))
	groupService := NewGroupService(db)

	first, err := groupService.JoinByInvite("user-1", "alice@example.com", firstInvite.Token)
	assert.Nil(t, err)
	_, err = groupService.JoinByInvite("user-1", "alice@example.com", secondInvite.Token)
	assert.Nil(t, err)

	defaultGroup, err := groupService.GetDefaultGroup("user-1")
	assert.Nil(t, err)
	assert.Equal(t, first.Id, defaultGroup.Id)
}

func TestGetDefaultGroupWithoutMemberships(t *testing.T) {
	defer TearDown()
	defaultGroup, err := NewGroupService(db).GetDefaultGroup("user-1")
	assert.Nil(t, err)
	assert.Nil(t, defaultGroup)
}
