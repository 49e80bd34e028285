package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localfixhq/localfix/errors"
	errs "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
	"github.com/localfixhq/localfix/server/response"
)

// handleResolveLocation turns device coordinates into a report location.
// The geo-fence applies here and only here; a manually typed address never
// passes through this endpoint.
func (s *Server) handleResolveLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResolveLocationRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}

		if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
			response.JSON(c, "", errs.ErrLocationUnavailable.Status, nil, errs.ErrLocationUnavailable)
			return
		}

		if !s.GeoFence.Allows(req.Lat, req.Lng) {
			response.JSON(c, "", errs.ErrLocationOutOfRegion.Status, nil, errs.ErrLocationOutOfRegion)
			return
		}

		address := s.Geocoder.Reverse(c.Request.Context(), req.Lat, req.Lng)
		response.JSON(c, "", http.StatusOK, models.Location{
			Address: address,
			Lat:     req.Lat,
			Lng:     req.Lng,
		}, nil)
	}
}
