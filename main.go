package main

import (
	"log"

	"github.com/localfixhq/localfix/authz"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/db"
	"github.com/localfixhq/localfix/geocode"
	"github.com/localfixhq/localfix/geofence"
	"github.com/localfixhq/localfix/mailingservices"
	"github.com/localfixhq/localfix/server"
	"github.com/localfixhq/localfix/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	// Reports live in a single versioned slot: a Postgres row when a
	// database is configured, a JSON file under DataDir otherwise.
	var (
		slot     db.Slot
		authRepo db.AuthRepository
	)
	if conf.PostgresHost != "" {
		gormDB := db.GetDB(conf)
		sqlDB, err := gormDB.DB.DB()
		if err != nil {
			log.Fatalf("unable to get sql handle: %v", err)
		}
		slot = db.NewSQLSlot(sqlDB, db.ReportSlotKey)
		authRepo = db.NewAuthRepo(gormDB)
	} else {
		log.Println("postgres not configured, using file-backed report slot")
		fileSlot, err := db.NewFileSlot(conf.DataDir, db.ReportSlotKey)
		if err != nil {
			log.Fatalf("unable to create file slot: %v", err)
		}
		slot = fileSlot
	}

	store := db.NewReportStore(slot)
	authorizer := authz.NewRolePolicy()
	feed := server.NewHub()

	reportService := services.NewReportService(store, authorizer, feed, mailgunClient, conf)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Config:        conf,
		Mail:          mailgunClient,
		Store:         store,
		Authorizer:    authorizer,
		GeoFence:      geofence.FromConfig(conf),
		Geocoder:      geocode.NewClient(conf.NominatimBaseUrl),
		ReportService: reportService,
		MediaService:  mediaService,
		Feed:          feed,
	}

	if authRepo != nil {
		s.AuthRepository = authRepo
		s.AuthService = services.NewAuthService(authRepo, conf)
	}

	s.Start()
}
