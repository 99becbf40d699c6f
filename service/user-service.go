package service

import (
	"fmt"

	"podium/auth"
	"podium/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

func (s *UserService) GetUserById(userId string) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

// EnsureUser upserts the user row for a verified set of claims. A stored
// display name survives repeated upserts.
func (s *UserService) EnsureUser(claims *auth.Claims) (*repository.User, error) {
	user := &repository.User{Id: claims.UserId}
	if claims.Email != "" {
		email := claims.Email
		user.Email = &email
	}
	return s.userRepository.UpsertUser(user)
}

func (s *UserService) UpdateDisplayName(userId string, displayName string) (*repository.User, error) {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return nil, err
	}
	user.DisplayName = &displayName
	return s.userRepository.SaveUser(user)
}

func ClaimsFromAuthHeader(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fmt.Errorf("authorization header is invalid")
	}
	return ClaimsFromToken(authHeader[7:])
}

func ClaimsFromToken(tokenString string) (*auth.Claims, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	return claims, nil
}
