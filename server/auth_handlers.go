package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localfixhq/localfix/errors"
	errs "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
	"github.com/localfixhq/localfix/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.AuthService == nil {
			response.JSON(c, "", http.StatusServiceUnavailable, nil, errs.New("accounts are not available in this deployment", http.StatusServiceUnavailable))
			return
		}

		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}

		createdUser, err := s.AuthService.SignupUser(&user)
		if err != nil {
			if apiErr, ok := err.(*errors.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, models.UserResponse{
			ID:       createdUser.ID,
			Fullname: createdUser.Fullname,
			Email:    createdUser.Email,
		}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.AuthService == nil {
			response.JSON(c, "", http.StatusServiceUnavailable, nil, errs.New("accounts are not available in this deployment", http.StatusServiceUnavailable))
			return
		}

		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			log.Println("Access token not found in context")
			respondAndAbort(c, "Access token not found in context", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		accessToken, ok := token.(string)
		if !ok {
			log.Println("Access token is not a string")
			respondAndAbort(c, "Access token is not a string", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		if apiErr := s.AuthService.LogoutUser(accessToken); apiErr != nil {
			respondAndAbort(c, "Logout failed", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		response.JSON(c, "", http.StatusOK, models.UserResponse{
			ID:       user.ID,
			Fullname: user.Fullname,
			Email:    user.Email,
			RoleName: user.Role.Name,
		}, nil)
	}
}
