package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/localfixhq/localfix/authz"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/db"
	"github.com/localfixhq/localfix/geocode"
	"github.com/localfixhq/localfix/geofence"
	"github.com/localfixhq/localfix/mailingservices"
	"github.com/localfixhq/localfix/models"
	"github.com/localfixhq/localfix/services"
)

// Server wires the HTTP layer to the services underneath it.
type Server struct {
	Config         *config.Config
	AuthRepository db.AuthRepository
	AuthService    services.AuthService
	ReportService  services.ReportService
	MediaService   services.MediaService
	Store          db.ReportStore
	Authorizer     authz.Authorizer
	GeoFence       geofence.Policy
	Geocoder       *geocode.Client
	Mail           *mailingservices.Mailgun
	Feed           *Hub
}

// Start serves the API until interrupted, then drains in-flight requests.
func (s *Server) Start() {
	if s.Feed != nil {
		go s.Feed.Run()
	}

	r := s.setupRouter()
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}
	log.Info("server stopped")
}

// decode binds the request body and runs the conform normalizers.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return models.ValidateWhiteSpaces(v)
}
