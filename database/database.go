package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/knockandknow/backend/configs"
	"github.com/knockandknow/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.ExamPhase{},
		&models.Question{},
		&models.Room{},
		&models.Participant{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// IsSchemaError reports whether a query failed because the schema has not been
// migrated yet (missing table or column). The listing endpoints surface this
// as a dedicated setup error instead of a generic failure.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 42P01") || // undefined_table
		strings.Contains(msg, "SQLSTATE 42703") || // undefined_column
		strings.Contains(msg, "does not exist")
}
