package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/server/response"
)

func (s *Server) handleUploadReportImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, fileHeader, err := c.Request.FormFile("image")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("Missing or invalid file", http.StatusBadRequest))
			return
		}

		imageURL, thumbnailURL, err := s.MediaService.UploadReportImage(c.Request.Context(), fileHeader)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		response.JSON(c, "upload successful", http.StatusCreated, gin.H{
			"image_url":     imageURL,
			"thumbnail_url": thumbnailURL,
		}, nil)
	}
}
