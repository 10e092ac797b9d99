package models

// ProjectInfo summarises a project for listings
type ProjectInfo struct {
	ID     string
	Name   string
	Issues int
}
