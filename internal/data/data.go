package data

import (
	"fmt"
	"path/filepath"

	"github.com/DevRickLin/feishu-away-bot/internal/biz/repo"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	sqliteFile = "state.db"
)

// Repositories contains the local repositories shared by the CLI, bot and MCP server
type Repositories struct {
	State     repo.StateStore
	Resources repo.ResourceRepo
}

// NewRepositories opens the state store for backend and the text resources, both under stateDir
func NewRepositories(stateDir, backend string) (*Repositories, error) {
	var (
		store repo.StateStore
		err   error
	)
	switch backend {
	case "", BackendFile:
		store, err = NewFileStore(stateDir)
	case BackendSQLite:
		store, err = NewSQLiteStore(filepath.Join(stateDir, sqliteFile))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}

	resources, err := NewResourceRepo(stateDir)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Repositories{State: store, Resources: resources}, nil
}

// Close releases the state store
func (r *Repositories) Close() error {
	return r.State.Close()
}
