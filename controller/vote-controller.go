package controller

import (
	"podium/app_error"
	"podium/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteController struct {
	voteService *service.VoteService
	userService *service.UserService
}

func NewVoteController(db *gorm.DB) *VoteController {
	return &VoteController{
		voteService: service.NewVoteService(db),
		userService: service.NewUserService(db),
	}
}

func setupVoteController(db *gorm.DB) []RouteInfo {
	e := NewVoteController(db)
	basePath := "/votes"
	routes := []RouteInfo{
		{Method: "GET", Path: "/me", HandlerFunc: e.getMyVoteHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.submitVoteHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type VoteSubmission struct {
	RaceId  string   `json:"race_id" binding:"required"`
	GroupId string   `json:"group_id" binding:"required"`
	Ranking []string `json:"ranking" binding:"required"`
}

// @id GetMyVote
// @Description Fetches the caller's stored vote for a race within a group. Readable even after voting locks.
// @Tags vote
// @Produce json
// @Param raceId query string true "Race Id"
// @Param groupId query string true "Group Id"
// @Success 200 {object} VoteResponse
// @Router /votes/me [get]
// @Security BearerAuth
func (e *VoteController) getMyVoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		vote, err := e.voteService.GetVote(claims.UserId, c.Query("raceId"), c.Query("groupId"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		if vote == nil {
			c.JSON(200, nil)
			return
		}
		c.JSON(200, toVoteResponse(vote))
	}
}

// @id SubmitVote
// @Description Submits or replaces the caller's top-10 prediction for a race. Rejected once qualifying has started.
// @Tags vote
// @Accept json
// @Produce json
// @Param vote body VoteSubmission true "Vote to submit"
// @Success 201 {object} VoteResponse
// @Router /votes [post]
// @Security BearerAuth
func (e *VoteController) submitVoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var submission VoteSubmission
		if err := c.BindJSON(&submission); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if _, err := e.userService.EnsureUser(claims); err != nil {
			app_error.Respond(c, err)
			return
		}
		vote, err := e.voteService.SubmitVote(claims.UserId, submission.RaceId, submission.GroupId, submission.Ranking)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toVoteResponse(vote))
	}
}
