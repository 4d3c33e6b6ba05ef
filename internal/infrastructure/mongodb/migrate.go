package mongodb

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	mongomigrate "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMigrator builds a migrate instance over the JSON command files in dir.
func NewMigrator(client *mongo.Client, database, dir string) (*migrate.Migrate, error) {
	driver, err := mongomigrate.WithInstance(client, &mongomigrate.Config{DatabaseName: database})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "mongodb", driver)
}

// RunMigrations applies every pending up migration. The unique indexes on
// userId and username come from here.
func RunMigrations(client *mongo.Client, database, dir string, logger *logrus.Logger) error {
	m, err := NewMigrator(client, database, dir)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
