package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "amas-backend-url"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Connect opens the database, migrates the schema and configures the connection pool.
//
// For SQLite, foreign key enforcement is enabled on the connection.
func Connect(driver, dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		if !strings.Contains(dsn, "foreign_keys") {
			separator := "?"
			if strings.Contains(dsn, "?") {
				separator = "&"
			}
			dsn = fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator)
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports one writer at a time, serializing all access
	// prevents SQLITE_BUSY errors
	if db.Dialector.Name() == DriverSQLite {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "amas:after_query", queryCallback},
		{db.Callback().Query().After("*"), "amas:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "amas:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "amas:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "amas:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "amas:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "amas:after_delete", deleteCallback},
		{db.Callback().Delete().After("*"), "amas:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*"), "amas:after_raw_general", generalCallback},
		{db.Callback().Row().After("*"), "amas:after_row_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Remove plural "s"
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// isForeignKeyViolation reports whether the error was raised by a foreign key
// constraint. The messages differ between SQLite and PostgreSQL.
func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint")
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// Budget lines and transactions must reference an existing task
	if isForeignKeyViolation(db.Error) {
		db.Error = fmt.Errorf("%w: %s", ErrReferential, db.Statement.Table)
	}
}

// deleteCallback translates foreign key failures on delete. Tasks
// cannot be deleted while budget lines or transactions reference them.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isForeignKeyViolation(db.Error) {
		db.Error = ErrTaskInUse
	}
}

// isStorageError reports whether the error comes from the database itself
// rather than from the data.
func isStorageError(err error) bool {
	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	return err.Error() == "sql: database is closed" ||
		reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) ||
		strings.Contains(err.Error(), "(SQLSTATE ")
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isStorageError(db.Error) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrStorage
	}
}

// transaction runs fc in a database transaction.
//
// Errors from beginning or committing the transaction do not pass
// through the callbacks and are translated here.
func transaction(db *gorm.DB, fc func(tx *gorm.DB) error) error {
	err := db.Transaction(fc)
	if err != nil && isStorageError(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrStorage
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Task{}, BudgetLine{}, Transaction{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
