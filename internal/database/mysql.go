package database

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// MySQL implements Client against a MySQL or MariaDB server.
// Every call opens its own short-lived connection.
type MySQL struct {
	open func(dsn string) (*gorm.DB, error)
}

// NewMySQL returns a MySQL client.
func NewMySQL() *MySQL {
	return &MySQL{open: openGorm}
}

func openGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DSN formats the driver connection string for p. dbName may be empty to
// connect without selecting a database; multi enables multi-statement scripts.
func DSN(p Params, dbName string, multi bool) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	port := p.Port
	if port == 0 {
		port = DefaultPort
	}
	cfg.Addr = net.JoinHostPort(p.Host, strconv.Itoa(port))
	cfg.DBName = dbName
	cfg.MultiStatements = multi
	return cfg.FormatDSN()
}

func (m *MySQL) connect(p Params, dbName string, multi bool) (*gorm.DB, func(), error) {
	db, err := m.open(DSN(p, dbName, multi))
	if err != nil {
		return nil, nil, fmt.Errorf(messages.DatabaseConnectFmt, p.Host, err)
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

// Exists reports whether the schema name exists on the server.
func (m *MySQL) Exists(ctx context.Context, p Params, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	db, closeFn, err := m.connect(p, "", false)
	if err != nil {
		return false, err
	}
	defer closeFn()

	var count int64
	err = db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?", name).
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf(messages.DatabaseExistsFmt, name, err)
	}
	return count > 0, nil
}

// Create creates the database name.
func (m *MySQL) Create(ctx context.Context, p Params, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	db, closeFn, err := m.connect(p, "", false)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := db.WithContext(ctx).Exec("CREATE DATABASE " + quoteIdent(name)).Error; err != nil {
		return fmt.Errorf(messages.DatabaseCreateFmt, name, err)
	}
	return nil
}

// RunScript executes the SQL file at path against database name.
// The script may hold several statements; client-only directives such as DELIMITER are not supported.
func (m *MySQL) RunScript(ctx context.Context, p Params, name string, path string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf(messages.DatabaseScriptFmt, path, name, err)
	}
	db, closeFn, err := m.connect(p, name, true)
	if err != nil {
		return err
	}
	defer closeFn()

	// Bypass gorm's statement builder so '?' and '@' in the script are sent verbatim.
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf(messages.DatabaseScriptFmt, path, name, err)
	}
	if _, err := sqlDB.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf(messages.DatabaseScriptFmt, path, name, err)
	}
	return nil
}

// Drop removes the database name if it exists.
func (m *MySQL) Drop(ctx context.Context, p Params, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	db, closeFn, err := m.connect(p, "", false)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := db.WithContext(ctx).Exec("DROP DATABASE IF EXISTS " + quoteIdent(name)).Error; err != nil {
		return fmt.Errorf(messages.DatabaseDropFmt, name, err)
	}
	return nil
}
