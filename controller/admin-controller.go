package controller

import (
	"podium/app_error"
	"podium/config"
	"podium/repository"
	"podium/service"
	"podium/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	adminService *service.AdminService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		adminService: service.NewAdminService(db, config.Env().AdminEmails),
	}
}

func setupAdminController(db *gorm.DB) []RouteInfo {
	e := NewAdminController(db)
	basePath := "/admin"
	routes := []RouteInfo{
		{Method: "POST", Path: "/races/:race_id/results", HandlerFunc: e.setResultsHandler(), Authenticated: true},
		{Method: "GET", Path: "/races", HandlerFunc: e.listRacesHandler(), Authenticated: true},
		{Method: "POST", Path: "/races", HandlerFunc: e.createRaceHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/races/:race_id", HandlerFunc: e.updateRaceHandler(), Authenticated: true},
		{Method: "DELETE", Path: "/races/:race_id", HandlerFunc: e.deleteRaceHandler(), Authenticated: true},
		{Method: "POST", Path: "/races/:race_id/sessions", HandlerFunc: e.setSessionHandler(), Authenticated: true},
		{Method: "GET", Path: "/races/:race_id/sessions", HandlerFunc: e.listSessionsHandler(), Authenticated: true},
		{Method: "POST", Path: "/groups", HandlerFunc: e.createGroupHandler(), Authenticated: true},
		{Method: "POST", Path: "/groups/:group_id/invites", HandlerFunc: e.createInviteHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type ResultSubmission struct {
	Positions []string `json:"positions" binding:"required"`
}

type RaceCreate struct {
	Season        int                   `json:"season" binding:"required"`
	Round         int                   `json:"round" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Circuit       string                `json:"circuit" binding:"required"`
	Q1StartTime   string                `json:"q1_start_time" binding:"required"`
	RaceStartTime string                `json:"race_start_time" binding:"required"`
	Status        repository.RaceStatus `json:"status"`
}

type RaceUpdate struct {
	Season        *int                   `json:"season"`
	Round         *int                   `json:"round"`
	Name          *string                `json:"name"`
	Circuit       *string                `json:"circuit"`
	Q1StartTime   *string                `json:"q1_start_time"`
	RaceStartTime *string                `json:"race_start_time"`
	Status        *repository.RaceStatus `json:"status"`
}

type SessionCreate struct {
	Type      repository.SessionType `json:"type" binding:"required"`
	StartTime string                 `json:"start_time" binding:"required"`
}

type GroupCreate struct {
	Name string `json:"name" binding:"required"`
}

// @id SetRaceResults
// @Description Stores the official finishing order for a race and recomputes every affected score. Re-submitting corrected positions overwrites prior scores.
// @Tags admin
// @Accept json
// @Produce json
// @Param race_id path string true "Race Id"
// @Param result body ResultSubmission true "Official finishing order, index 0 = P1"
// @Success 200 {object} ResultResponse
// @Router /admin/races/{race_id}/results [post]
// @Security BearerAuth
func (e *AdminController) setResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var submission ResultSubmission
		if err := c.BindJSON(&submission); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		result, err := e.adminService.SetRaceResults(c.Param("race_id"), submission.Positions, claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toResultResponse(result))
	}
}

// @id AdminListRaces
// @Description Fetches all races for administration
// @Tags admin
// @Produce json
// @Success 200 {array} RaceResponse
// @Router /admin/races [get]
// @Security BearerAuth
func (e *AdminController) listRacesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		races, err := e.adminService.ListRaces(claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(races, toRaceResponse))
	}
}

// @id CreateRace
// @Description Creates a race
// @Tags admin
// @Accept json
// @Produce json
// @Param race body RaceCreate true "Race to create"
// @Success 201 {object} RaceResponse
// @Router /admin/races [post]
// @Security BearerAuth
func (e *AdminController) createRaceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var create RaceCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		race, err := e.adminService.CreateRace(&service.RaceCreate{
			Season:        create.Season,
			Round:         create.Round,
			Name:          create.Name,
			Circuit:       create.Circuit,
			Q1StartTime:   create.Q1StartTime,
			RaceStartTime: create.RaceStartTime,
			Status:        create.Status,
		}, claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toRaceResponse(race))
	}
}

// @id UpdateRace
// @Description Updates race fields; omitted fields stay unchanged
// @Tags admin
// @Accept json
// @Produce json
// @Param race_id path string true "Race Id"
// @Param race body RaceUpdate true "Fields to update"
// @Success 200 {object} RaceResponse
// @Router /admin/races/{race_id} [patch]
// @Security BearerAuth
func (e *AdminController) updateRaceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var update RaceUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		race, err := e.adminService.UpdateRace(c.Param("race_id"), &service.RaceUpdate{
			Season:        update.Season,
			Round:         update.Round,
			Name:          update.Name,
			Circuit:       update.Circuit,
			Q1StartTime:   update.Q1StartTime,
			RaceStartTime: update.RaceStartTime,
			Status:        update.Status,
		}, claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toRaceResponse(race))
	}
}

// @id DeleteRace
// @Description Deletes a race and every session, vote, score, result and achievement referencing it
// @Tags admin
// @Param race_id path string true "Race Id"
// @Success 204
// @Router /admin/races/{race_id} [delete]
// @Security BearerAuth
func (e *AdminController) deleteRaceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		err := e.adminService.DeleteRace(c.Param("race_id"), claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

// @id SetRaceSession
// @Description Records or updates a session start time. Qualifying sessions move the vote lock boundary, race sessions move the race start.
// @Tags admin
// @Accept json
// @Produce json
// @Param race_id path string true "Race Id"
// @Param session body SessionCreate true "Session to set"
// @Success 200 {object} SessionResponse
// @Router /admin/races/{race_id}/sessions [post]
// @Security BearerAuth
func (e *AdminController) setSessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var create SessionCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		session, err := e.adminService.SetRaceSession(c.Param("race_id"), create.Type, create.StartTime, claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toSessionResponse(session))
	}
}

// @id ListRaceSessions
// @Description Fetches a race's sessions ordered by start time
// @Tags admin
// @Produce json
// @Param race_id path string true "Race Id"
// @Success 200 {array} SessionResponse
// @Router /admin/races/{race_id}/sessions [get]
// @Security BearerAuth
func (e *AdminController) listSessionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		sessions, err := e.adminService.ListRaceSessions(c.Param("race_id"), claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(sessions, toSessionResponse))
	}
}

// @id CreateGroup
// @Description Creates a group with the caller as first member
// @Tags admin
// @Accept json
// @Produce json
// @Param group body GroupCreate true "Group to create"
// @Success 201 {object} GroupResponse
// @Router /admin/groups [post]
// @Security BearerAuth
func (e *AdminController) createGroupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var create GroupCreate
		if err := c.BindJSON(&create); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		group, err := e.adminService.CreateGroup(create.Name, claims.UserId, claims.Email, claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toGroupResponse(group))
	}
}

// @id CreateGroupInvite
// @Description Creates an invite token for a group, valid for 14 days
// @Tags admin
// @Produce json
// @Param group_id path string true "Group Id"
// @Success 201 {object} GroupInviteResponse
// @Router /admin/groups/{group_id}/invites [post]
// @Security BearerAuth
func (e *AdminController) createInviteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		invite, err := e.adminService.CreateGroupInvite(c.Param("group_id"), claims.Email)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toGroupInviteResponse(invite))
	}
}
