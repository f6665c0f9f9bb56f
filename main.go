package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"warbler/crud"
	"warbler/database"
	"warbler/http"
)

// main is the app's entry point.
func main() {
	// The "-prod" flag means we're running in production. In that case a
	// .config.json file is required and the app refuses to start without it.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	config := LoadConfig(*productionBool)
	if config.IsProd() {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Open a database connection and execute migrations.
	db := database.NewDB(config.Database.ConnectionInfo())
	if err := database.Open(db, config.IsProd()); err != nil {
		log.WithError(err).Fatal("opening database")
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db.Gorm); err != nil {
		log.WithError(err).Fatal("running migrations")
	}

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.HMACKey, config.Pepper),
		crud.WithMessage(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	if err != nil {
		log.WithError(err).Fatal("starting services")
	}

	// Set up a webserver and serve the app.
	server := http.NewServer(http.Config{
		CSRFAuthKey: config.CSRFKey,
		Secure:      config.IsProd(),
	}, services)
	if err := server.Run(config.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
