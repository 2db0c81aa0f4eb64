// Package database provisions and inspects the application databases.
package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// DefaultPort is the MySQL port used when Params.Port is zero.
const DefaultPort = 3306

// Params holds the server connection parameters shared by every database operation.
type Params struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Client is the database collaborator of the installer.
// Exists has three outcomes: (true, nil), (false, nil), or an error when existence
// could not be verified.
type Client interface {
	Exists(ctx context.Context, p Params, name string) (bool, error)
	Create(ctx context.Context, p Params, name string) error
	RunScript(ctx context.Context, p Params, name string, path string) error
	Drop(ctx context.Context, p Params, name string) error
}

// ErrInvalidName reports a database name that cannot be used as an identifier.
var ErrInvalidName = errors.New("invalid database name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)

// ValidateName checks that name is a plain MySQL identifier.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: "+messages.DatabaseInvalidNameFmt, ErrInvalidName, name)
	}
	return nil
}

// quoteIdent quotes a validated identifier.
func quoteIdent(name string) string {
	return "`" + name + "`"
}
