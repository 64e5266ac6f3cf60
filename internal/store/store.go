// Package store implements the repositories over gorm. Project and task
// lookups always go through the ownership scopes in scope.go.
package store

import "gorm.io/gorm"

type Store struct {
	Users    *UserStore
	Projects *ProjectStore
	Tasks    *TaskStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Projects: &ProjectStore{db: db},
		Tasks:    &TaskStore{db: db},
	}
}
