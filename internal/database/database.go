package database

import (
	"github.com/mdouchement/spacetime/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		MemoryInteraction
	}

	// A MemoryInteraction defines all the methods used to interact with memory record(s).
	MemoryInteraction interface {
		// FindMemory returns the memory for the given id (UUID).
		FindMemory(id string) (*model.Memory, error)
		// FindMemories returns all the memories ordered by creation date.
		FindMemories() ([]*model.Memory, error)
		// FindMemoriesByUserID returns all the memories of the given user ordered by creation date.
		FindMemoriesByUserID(userID string) ([]*model.Memory, error)
		// DeleteMemoriesByUserID deletes all the memories of the given user.
		DeleteMemoriesByUserID(userID string) error
	}
)
