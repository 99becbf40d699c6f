package controller

import (
	"time"

	"podium/client"
	"podium/utils"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
)

type DriverController struct {
	openF1Client *client.OpenF1Client
}

func NewDriverController() *DriverController {
	return &DriverController{
		openF1Client: client.NewOpenF1Client(),
	}
}

func setupDriverController(cacheStore persistence.CacheStore) []RouteInfo {
	e := NewDriverController()
	return []RouteInfo{
		{Method: "GET", Path: "/drivers", HandlerFunc: cache.CachePage(cacheStore, 10*time.Minute, e.listDriversHandler())},
	}
}

type DriverResponse struct {
	Name   string  `json:"name"`
	Number int     `json:"number"`
	Team   *string `json:"team"`
}

// @id ListDrivers
// @Description Fetches the current driver lineup from OpenF1
// @Tags driver
// @Produce json
// @Success 200 {array} DriverResponse
// @Router /drivers [get]
func (e *DriverController) listDriversHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		drivers, err := e.openF1Client.GetDrivers()
		if err != nil {
			c.JSON(502, gin.H{"error": "driver lineup unavailable"})
			return
		}
		c.JSON(200, utils.Map(drivers, func(driver *client.OpenF1Driver) DriverResponse {
			return DriverResponse{
				Name:   driver.FullName,
				Number: driver.DriverNumber,
				Team:   driver.TeamName,
			}
		}))
	}
}
