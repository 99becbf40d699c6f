package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Group struct {
	Id        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

type GroupMember struct {
	GroupId  string    `gorm:"primaryKey"`
	UserId   string    `gorm:"primaryKey"`
	JoinedAt time.Time `gorm:"not null"`

	Group *Group `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
	User  *User  `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// GroupInvite tokens grant membership until they expire. They are not
// consumed on use; expiry is the only limit.
type GroupInvite struct {
	Token     string    `gorm:"primaryKey"`
	GroupId   string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`

	Group *Group `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
}

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) GetGroupById(groupId string) (*Group, error) {
	var group Group
	result := r.DB.First(&group, "id = ?", groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *GroupRepository) SaveGroup(group *Group) (*Group, error) {
	result := r.DB.Save(group)
	if result.Error != nil {
		return nil, result.Error
	}
	return group, nil
}

func (r *GroupRepository) GetGroupsForUser(userId string) ([]*Group, error) {
	memberships := make([]*GroupMember, 0)
	result := r.DB.Preload("Group").Find(&memberships, "user_id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	groups := make([]*Group, 0, len(memberships))
	for _, membership := range memberships {
		groups = append(groups, membership.Group)
	}
	return groups, nil
}

func (r *GroupRepository) GetEarliestMembership(userId string) (*GroupMember, error) {
	var membership GroupMember
	result := r.DB.Preload("Group").Where("user_id = ?", userId).Order("joined_at ASC").First(&membership)
	if result.Error != nil {
		return nil, result.Error
	}
	return &membership, nil
}

// UpsertMember makes joining idempotent; rejoining keeps the original
// joined_at so the default-group choice stays stable.
func (r *GroupRepository) UpsertMember(member *GroupMember) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member)
	return result.Error
}

func (r *GroupRepository) GetValidInvite(token string, now time.Time) (*GroupInvite, error) {
	var invite GroupInvite
	result := r.DB.Preload("Group").Where("token = ? AND expires_at > ?", token, now).First(&invite)
	if result.Error != nil {
		return nil, result.Error
	}
	return &invite, nil
}

func (r *GroupRepository) SaveInvite(invite *GroupInvite) (*GroupInvite, error) {
	result := r.DB.Save(invite)
	if result.Error != nil {
		return nil, result.Error
	}
	return invite, nil
}
