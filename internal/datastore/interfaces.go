// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/koreality/koreality-go/internal/conf"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Interface abstracts the underlying database implementation and defines the
// operations the rest of the service is allowed to perform.
type Interface interface {
	Open() error
	Close() error

	// locations
	GetVerifiedLocations(ctx context.Context) ([]Location, error)
	GetLocationsByIDs(ctx context.Context, ids []string) ([]Location, error)

	// events
	GetUpcomingEvents(ctx context.Context) ([]Event, error)
	GetUpcomingEventsByIdol(ctx context.Context, idolID string) ([]Event, error)
	GetUpcomingEventsByIdols(ctx context.Context, idolIDs []string) ([]Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)

	// idols and bands
	GetActiveIdols(ctx context.Context) ([]Idol, error)
	GetSoloArtists(ctx context.Context) ([]Idol, error)
	GetIdol(ctx context.Context, id string) (*Idol, error)
	GetBands(ctx context.Context) ([]Band, error)
	GetBand(ctx context.Context, id string) (*Band, error)
	GetBandMembers(ctx context.Context, bandID string) ([]Idol, error)

	// advertisements
	GetActiveAdvertisements(ctx context.Context) ([]Advertisement, error)
	IncrementAdView(ctx context.Context, adID string) error
	IncrementAdClick(ctx context.Context, adID string) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Database.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Database.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}

// performAutoMigration runs gorm auto-migration for all entities.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(
		&Idol{},
		&Band{},
		&Location{},
		&Event{},
		&Advertisement{},
	); err != nil {
		return newDatabaseError(err, "auto-migration", dbType)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}
