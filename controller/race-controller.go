package controller

import (
	"time"

	"podium/app_error"
	"podium/client"
	"podium/service"
	"podium/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RaceController struct {
	raceService *service.RaceService
	syncService *service.SyncService
}

func NewRaceController(db *gorm.DB) *RaceController {
	return &RaceController{
		raceService: service.NewRaceService(db),
		syncService: service.NewSyncService(db, client.NewOpenF1Client()),
	}
}

func setupRaceController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewRaceController(db)
	basePath := "/races"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.listRacesHandler())},
		{Method: "GET", Path: "/next", HandlerFunc: e.getNextRaceHandler()},
		{Method: "GET", Path: "/standings", HandlerFunc: e.getStandingsHandler()},
		{Method: "GET", Path: "/:race_id/results", HandlerFunc: e.getGroupResultsHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @id ListRaces
// @Description Fetches the race calendar, newest season and round first
// @Tags race
// @Produce json
// @Success 200 {array} RaceResponse
// @Router /races [get]
func (e *RaceController) listRacesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// listing is the demand that drives calendar refresh; the sync
		// service throttles itself and swallows upstream failures
		_ = e.syncService.SyncSeason(time.Now().Year())
		races, err := e.raceService.ListRaces()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(races, toRaceResponse))
	}
}

// @id GetNextRace
// @Description Fetches the next race that has not started yet
// @Tags race
// @Produce json
// @Success 200 {object} RaceResponse
// @Router /races/next [get]
func (e *RaceController) getNextRaceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		race, err := e.raceService.GetNextRace()
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toRaceResponse(race))
	}
}

// @id GetSeasonStandings
// @Description Fetches the accumulated season standings for a group
// @Tags race
// @Produce json
// @Param groupId query string true "Group Id"
// @Success 200 {array} scoring.StandingsEntry
// @Router /races/standings [get]
func (e *RaceController) getStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId := c.Query("groupId")
		if groupId == "" {
			c.JSON(400, gin.H{"error": "groupId is required"})
			return
		}
		standings, err := e.raceService.GetSeasonStandings(groupId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, standings)
	}
}

// @id GetGroupResults
// @Description Fetches the per-user scores of one race within a group
// @Tags race
// @Produce json
// @Param race_id path string true "Race Id"
// @Param groupId query string true "Group Id"
// @Success 200 {array} ScoreResponse
// @Router /races/{race_id}/results [get]
func (e *RaceController) getGroupResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupId := c.Query("groupId")
		if groupId == "" {
			c.JSON(400, gin.H{"error": "groupId is required"})
			return
		}
		scores, err := e.raceService.GetGroupResults(c.Param("race_id"), groupId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(scores, toScoreResponse))
	}
}
