package controller

import (
	"podium/app_error"
	"podium/service"
	"podium/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupController struct {
	groupService *service.GroupService
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		groupService: service.NewGroupService(db),
	}
}

func setupGroupController(db *gorm.DB) []RouteInfo {
	e := NewGroupController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/groups", HandlerFunc: e.listGroupsHandler(), Authenticated: true},
		{Method: "GET", Path: "/groups/default", HandlerFunc: e.getDefaultGroupHandler(), Authenticated: true},
		{Method: "POST", Path: "/invites/:token/join", HandlerFunc: e.joinGroupHandler(), Authenticated: true},
	}
}

// @id ListGroups
// @Description Fetches the groups the caller belongs to
// @Tags group
// @Produce json
// @Success 200 {array} GroupResponse
// @Router /groups [get]
// @Security BearerAuth
func (e *GroupController) listGroupsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		groups, err := e.groupService.ListGroupsForUser(claims.UserId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(groups, toGroupResponse))
	}
}

// @id GetDefaultGroup
// @Description Fetches the group the caller joined first, if any
// @Tags group
// @Produce json
// @Success 200 {object} GroupResponse
// @Router /groups/default [get]
// @Security BearerAuth
func (e *GroupController) getDefaultGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		group, err := e.groupService.GetDefaultGroup(claims.UserId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if group == nil {
			c.JSON(200, nil)
			return
		}
		c.JSON(200, toGroupResponse(group))
	}
}

// @id JoinGroup
// @Description Joins a group using an invite token
// @Tags group
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} GroupResponse
// @Router /invites/{token}/join [post]
// @Security BearerAuth
func (e *GroupController) joinGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		group, err := e.groupService.JoinByInvite(claims.UserId, claims.Email, c.Param("token"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toGroupResponse(group))
	}
}
