// Package sqlstore persists boards in a SQL database through gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is a gorm backed board store
type Store struct {
	db *gorm.DB
}

// Open connects to driver ("sqlite" or "mysql") at dsn and migrates the
// schema.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: connect %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// Every pooled connection to :memory: would see its own database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlstore: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return New(db)
}

// New wraps an existing connection and migrates the schema
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("sqlstore: auto-migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitProject creates a project with the default statuses
func (s *Store) InitProject(ctx context.Context, projectID, name string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return fmt.Errorf("sqlstore: check project %s: %w", projectID, err)
	}
	if count > 0 {
		return fmt.Errorf("sqlstore: project %q already exists", projectID)
	}

	columns := models.DefaultColumns()
	for i := range columns {
		columns[i].ID = projectID + "-" + columns[i].ID
	}
	return s.Seed(ctx, projectID, name, columns, nil)
}

// Seed upserts a project with its statuses and issues. Issues get
// sequence numbers in slice order.
func (s *Store) Seed(ctx context.Context, projectID, name string, columns []models.Column, cards []models.Card) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project := Project{ID: projectID, Name: name}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Create(&project).Error; err != nil {
			return fmt.Errorf("sqlstore: seed project %q: %w", projectID, err)
		}

		for _, col := range columns {
			status := statusFromColumn(projectID, col)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status_key", "name", "color", "category", "position", "updated_at"}),
			}).Create(&status).Error; err != nil {
				return fmt.Errorf("sqlstore: seed status %q: %w", col.ID, err)
			}
		}

		for i, card := range cards {
			issue := issueFromCard(projectID, i+1, card)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "status", "parent_id", "priority", "labels", "sequence", "updated_at"}),
			}).Create(&issue).Error; err != nil {
				return fmt.Errorf("sqlstore: seed issue %q: %w", card.ID, err)
			}
		}
		return nil
	})
}

// CreateIssue appends an issue to a project
func (s *Store) CreateIssue(ctx context.Context, projectID string, card models.Card) error {
	if card.ID == "" {
		return fmt.Errorf("sqlstore: issue id is required")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, projectID); err != nil {
			return err
		}
		var taken int64
		if err := tx.Model(&Issue{}).Where("id = ?", card.ID).Count(&taken).Error; err != nil {
			return fmt.Errorf("sqlstore: check issue %q: %w", card.ID, err)
		}
		if taken > 0 {
			return fmt.Errorf("sqlstore: %w: %s", models.ErrIssueExists, card.ID)
		}
		var last int
		if err := tx.Model(&Issue{}).Where("project_id = ?", projectID).
			Select("COALESCE(MAX(sequence), 0)").Scan(&last).Error; err != nil {
			return fmt.Errorf("sqlstore: next sequence: %w", err)
		}
		issue := issueFromCard(projectID, last+1, card)
		if err := tx.Create(&issue).Error; err != nil {
			return fmt.Errorf("sqlstore: create issue %q: %w", card.ID, err)
		}
		return nil
	})
}

// ListProjects returns every project with its issue count, by ID
func (s *Store) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	var rows []struct {
		ID     string
		Name   string
		Issues int
	}
	err := s.db.WithContext(ctx).Model(&Project{}).
		Select("projects.id, projects.name, COUNT(issues.id) AS issues").
		Joins("LEFT JOIN issues ON issues.project_id = projects.id").
		Group("projects.id, projects.name").
		Order("projects.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list projects: %w", err)
	}

	projects := make([]models.ProjectInfo, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, models.ProjectInfo{ID: r.ID, Name: r.Name, Issues: r.Issues})
	}
	return projects, nil
}

// FetchBoardData loads a project's statuses and issues. Issues come back
// in creation order.
func (s *Store) FetchBoardData(ctx context.Context, projectID string) (models.BoardData, error) {
	db := s.db.WithContext(ctx)
	if err := requireProject(db, projectID); err != nil {
		return models.BoardData{}, err
	}

	var statuses []Status
	if err := db.Where("project_id = ?", projectID).Order("position, id").Find(&statuses).Error; err != nil {
		return models.BoardData{}, fmt.Errorf("sqlstore: list statuses: %w", err)
	}
	var issues []Issue
	if err := db.Where("project_id = ?", projectID).Order("sequence, id").Find(&issues).Error; err != nil {
		return models.BoardData{}, fmt.Errorf("sqlstore: list issues: %w", err)
	}

	data := models.BoardData{
		Issues:   make([]models.Card, 0, len(issues)),
		Statuses: make([]models.Column, 0, len(statuses)),
	}
	for _, st := range statuses {
		data.Statuses = append(data.Statuses, st.column())
	}
	for _, is := range issues {
		data.Issues = append(data.Issues, is.card())
	}
	return data, nil
}

// UpdateIssueStatus moves an issue to the status with the given key
func (s *Store) UpdateIssueStatus(ctx context.Context, issueID, status string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue Issue
		if err := tx.Where("id = ?", issueID).First(&issue).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("sqlstore: issue not found: %s", issueID)
			}
			return fmt.Errorf("sqlstore: get issue %s: %w", issueID, err)
		}

		var count int64
		if err := tx.Model(&Status{}).
			Where("project_id = ? AND status_key = ?", issue.ProjectID, status).
			Count(&count).Error; err != nil {
			return fmt.Errorf("sqlstore: check status %q: %w", status, err)
		}
		if count == 0 {
			return fmt.Errorf("sqlstore: unknown status %q in project %q", status, issue.ProjectID)
		}

		if err := tx.Model(&issue).Update("status", status).Error; err != nil {
			return fmt.Errorf("sqlstore: update issue %s: %w", issueID, err)
		}
		return nil
	})
}

// PersistColumnOrder renumbers status positions to match an absolute order
func (s *Store) PersistColumnOrder(ctx context.Context, projectID string, orderedColumnIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var statuses []Status
		if err := tx.Where("project_id = ?", projectID).Find(&statuses).Error; err != nil {
			return fmt.Errorf("sqlstore: list statuses: %w", err)
		}

		board := models.Board{Columns: make([]models.Column, len(statuses))}
		for i, st := range statuses {
			board.Columns[i] = st.column()
		}
		if err := operations.ValidateColumnOrder(&board, orderedColumnIDs); err != nil {
			return fmt.Errorf("sqlstore: %w", err)
		}

		for i, id := range orderedColumnIDs {
			if err := tx.Model(&Status{}).Where("id = ?", id).Update("position", float64(i)).Error; err != nil {
				return fmt.Errorf("sqlstore: reorder status %s: %w", id, err)
			}
		}
		return nil
	})
}

func requireProject(db *gorm.DB, projectID string) error {
	var project Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("sqlstore: project not found: %s", projectID)
		}
		return fmt.Errorf("sqlstore: get project %s: %w", projectID, err)
	}
	return nil
}
