// Package store selects the board persistence backend.
package store

import (
	"context"
	"fmt"

	"issueboard/internal/config"
	"issueboard/internal/kanban/commit"
	"issueboard/internal/kanban/fs"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/sqlstore"
)

// Service is everything the board needs from a backend: the fetch
// contract, the two persistence calls, and project bootstrap.
type Service interface {
	commit.Persister
	FetchBoardData(ctx context.Context, projectID string) (models.BoardData, error)
	ListProjects(ctx context.Context) ([]models.ProjectInfo, error)
	InitProject(ctx context.Context, projectID, name string) error
	CreateIssue(ctx context.Context, projectID string, card models.Card) error
	Close() error
}

var (
	_ Service = (*fs.Store)(nil)
	_ Service = (*sqlstore.Store)(nil)
)

// Open returns the backend named by cfg.Backend
func Open(cfg *config.Config) (Service, error) {
	switch cfg.Backend {
	case config.BackendFS:
		if err := cfg.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return fs.NewStore(cfg.DataDir), nil
	case config.BackendSQLite:
		if err := cfg.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		return sqlstore.Open(cfg.Backend, cfg.DSN)
	case config.BackendMySQL:
		return sqlstore.Open(cfg.Backend, cfg.DSN)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}
