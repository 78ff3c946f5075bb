// Package wire provides dependency injection for the sentinel application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"log"
	"os"
	"sync"

	"github.com/example/sentinel/internal/adapters/sqlite"
	"github.com/example/sentinel/internal/app"
	"github.com/example/sentinel/internal/config"
	"github.com/example/sentinel/internal/db"
	"github.com/example/sentinel/internal/ports/secondary"
)

var (
	cfg           *config.Config
	database      *sql.DB
	userRepo      secondary.UserRepository
	incidentRepo  secondary.IncidentRepository
	ticketRepo    secondary.TicketRepository
	datasetRepo   secondary.DatasetRepository
	userService   *app.UserService
	importService *app.ImportService
	once          sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// DB returns the shared database handle.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// Users returns the singleton user repository.
func Users() secondary.UserRepository {
	once.Do(initServices)
	return userRepo
}

// Incidents returns the singleton incident repository.
func Incidents() secondary.IncidentRepository {
	once.Do(initServices)
	return incidentRepo
}

// Tickets returns the singleton ticket repository.
func Tickets() secondary.TicketRepository {
	once.Do(initServices)
	return ticketRepo
}

// Datasets returns the singleton dataset repository.
func Datasets() secondary.DatasetRepository {
	once.Do(initServices)
	return datasetRepo
}

// UserService returns the singleton UserService instance.
func UserService() *app.UserService {
	once.Do(initServices)
	return userService
}

// ImportService returns the singleton ImportService instance.
func ImportService() *app.ImportService {
	once.Do(initServices)
	return importService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to resolve home directory: %v", err)
	}

	cfg, err = config.LoadConfig(home)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err = db.Open(cfg.DBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	userRepo = sqlite.NewUserRepository(database)
	incidentRepo = sqlite.NewIncidentRepository(database)
	ticketRepo = sqlite.NewTicketRepository(database)
	datasetRepo = sqlite.NewDatasetRepository(database)

	userService = app.NewUserService(userRepo, cfg.BootstrapAdmin)
	importService = app.NewImportService(database)
}
