// Package cli implements the habitkit command surface. Commands receive a
// shared Context carrying the storage provider and the habit service.
package cli

import (
	"github.com/julianstephens/habitkit/internal/habits"
	"github.com/julianstephens/habitkit/internal/storage"
)

type Context struct {
	Config  string
	Store   storage.Provider
	Service *habits.Service
}
