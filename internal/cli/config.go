package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/storage"
)

type ConfigCmd struct {
	SetConnection   ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring." name:"set-connection"`
	ShowConnection  ConfigShowConnectionCmd  `cmd:"" help:"Show the stored connection string with the password masked." name:"show-connection"`
	ClearConnection ConfigClearConnectionCmd `cmd:"" help:"Remove the stored connection string from the OS keyring." name:"clear-connection"`
}

type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !storage.IsPostgres(c.ConnectionString) {
		return errors.New("connection string must start with postgres:// or postgresql://")
	}

	if storage.HasEmbeddedCredentials(c.ConnectionString) {
		// The keyring is encrypted, so embedded credentials are acceptable here
		fmt.Println("⚠️  Connection string contains embedded credentials; it will be stored in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored in OS keyring")
	return nil
}

type ConfigShowConnectionCmd struct{}

func (c *ConfigShowConnectionCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'habitkit config set-connection' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// maskPassword masks the password portion of a URL-style connection string
func maskPassword(connStr string) string {
	idx := strings.Index(connStr, "://")
	if idx == -1 {
		return connStr
	}
	remaining := connStr[idx+3:]
	atIdx := strings.LastIndex(remaining, "@")
	if atIdx == -1 {
		return connStr
	}
	userInfo := remaining[:atIdx]
	colonIdx := strings.Index(userInfo, ":")
	if colonIdx == -1 {
		return connStr
	}
	return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + remaining[atIdx:]
}
