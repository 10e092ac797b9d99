package store

import (
	"context"
	"path/filepath"
	"testing"

	"issueboard/internal/config"
	"issueboard/internal/kanban/models"
)

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"fs", config.Config{Backend: config.BackendFS, DataDir: filepath.Join(dir, "fs")}},
		{"sqlite", config.Config{Backend: config.BackendSQLite, DataDir: filepath.Join(dir, "sql"), DSN: filepath.Join(dir, "sql", "board.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := Open(&tt.cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer svc.Close()

			ctx := context.Background()
			if err := svc.InitProject(ctx, "eng", "Engineering"); err != nil {
				t.Fatalf("InitProject: %v", err)
			}
			if err := svc.CreateIssue(ctx, "eng", models.Card{ID: "ENG-1", Title: "First", Status: "todo"}); err != nil {
				t.Fatalf("CreateIssue: %v", err)
			}
			if err := svc.UpdateIssueStatus(ctx, "ENG-1", "done"); err != nil {
				t.Fatalf("UpdateIssueStatus: %v", err)
			}

			data, err := svc.FetchBoardData(ctx, "eng")
			if err != nil {
				t.Fatalf("FetchBoardData: %v", err)
			}
			if len(data.Issues) != 1 || data.Issues[0].Status != "done" {
				t.Errorf("unexpected issues %+v", data.Issues)
			}

			ids := make([]string, len(data.Statuses))
			for i, st := range data.Statuses {
				ids[len(ids)-1-i] = st.ID
			}
			if err := svc.PersistColumnOrder(ctx, "eng", ids); err != nil {
				t.Fatalf("PersistColumnOrder: %v", err)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(&config.Config{Backend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
