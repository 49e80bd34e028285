package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localfixhq/localfix/errors"
	errs "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
	"github.com/localfixhq/localfix/server/response"
	"github.com/localfixhq/localfix/services/jwt"
)

func (s *Server) handleSubmitReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft models.ReportDraft
		if err := decode(c, &draft); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}

		session := s.sessionFromRequest(c)
		report, apiErr := s.ReportService.Submit(c.Request.Context(), &draft, session)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "Report Submitted: thank you for helping your community", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.StatusFilter(c.DefaultQuery("status", string(models.FilterAll)))
		if !filter.Valid() {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown status filter", http.StatusBadRequest))
			return
		}
		search := c.Query("q")

		reports, stats, apiErr := s.ReportService.List(c.Request.Context(), filter, search)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"reports": reports,
			"stats":   stats,
		}, nil)
	}
}

func (s *Server) handleGetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, "", http.StatusOK, models.Categories, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateStatusRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}

		id := c.Param("id")
		if apiErr := s.ReportService.UpdateStatus(c.Request.Context(), currentUser(c), id, req.Status); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "status updated", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleClearReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiErr := s.ReportService.ClearAll(c.Request.Context(), currentUser(c)); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "all reports cleared", http.StatusOK, nil, nil)
	}
}

// sessionFromRequest returns the submitter's identity when a valid token is
// presented, nil otherwise. Submission never fails on a bad token; it just
// falls back to the anonymous identity.
func (s *Server) sessionFromRequest(c *gin.Context) *models.SessionUser {
	if s.AuthRepository == nil {
		return nil
	}
	accessToken := getTokenFromHeader(c)
	if accessToken == "" || s.AuthRepository.IsTokenInBlacklist(accessToken) {
		return nil
	}

	claims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
	if err != nil {
		return nil
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil
	}
	user, err := s.AuthRepository.FindUserByID(uint(id))
	if err != nil {
		return nil
	}
	return user.Session()
}
