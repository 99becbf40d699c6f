package controller

import (
	"podium/app_error"
	"podium/repository"
	"podium/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/users/me", HandlerFunc: e.getMeHandler(), Authenticated: true},
		{Method: "PATCH", Path: "/users/me", HandlerFunc: e.updateMeHandler(), Authenticated: true},
	}
}

type UserUpdate struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// @id GetMe
// @Description Fetches the caller's profile, creating it on first touch
// @Tags user
// @Produce json
// @Success 200 {object} UserResponse
// @Router /users/me [get]
// @Security BearerAuth
func (e *UserController) getMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		user, err := e.userService.EnsureUser(claims)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

// @id UpdateMe
// @Description Sets the caller's display name, shown on leaderboards
// @Tags user
// @Accept json
// @Produce json
// @Param user body UserUpdate true "Fields to update"
// @Success 200 {object} UserResponse
// @Router /users/me [patch]
// @Security BearerAuth
func (e *UserController) updateMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		var update UserUpdate
		if err := c.BindJSON(&update); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if _, err := e.userService.EnsureUser(claims); err != nil {
			app_error.Respond(c, err)
			return
		}
		user, err := e.userService.UpdateDisplayName(claims.UserId, update.DisplayName)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

type UserResponse struct {
	Id          string  `json:"id"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Name        string  `json:"name"`
}

func toUserResponse(user *repository.User) UserResponse {
	return UserResponse{
		Id:          user.Id,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Name:        user.Name(),
	}
}
