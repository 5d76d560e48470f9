package cli

import "fmt"

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	count, err := ctx.Store.Migrate(func(msg string) {
		fmt.Println("  " + msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer ctx.Store.Close()

	if count == 0 {
		fmt.Println("Database is up to date.")
	} else {
		fmt.Printf("Applied %d migration(s).\n", count)
	}
	return nil
}
