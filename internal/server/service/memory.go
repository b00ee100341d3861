package service

import (
	"github.com/mdouchement/spacetime/internal/apierror"
	"github.com/mdouchement/spacetime/internal/database"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/pkg/errors"
)

type (
	// IDParams identifies a memory in a path.
	IDParams struct {
		ID string `json:"id" validate:"required,uuid"`
	}

	// MemoryParams are the fields accepted to create or update a memory.
	MemoryParams struct {
		Content  *string `json:"content"  validate:"required"`
		CoverURL *string `json:"coverUrl" validate:"required"`
		IsPublic Boolean `json:"isPublic"`
	}

	// A MemoryService performs the memory operations on behalf of a principal.
	MemoryService interface {
		// List returns the memories visible in the principal's list ordered by creation date.
		List() ([]*model.Memory, error)
		// Get returns the memory for the given id.
		Get(id string) (*model.Memory, error)
		// Create creates a memory owned by the principal.
		Create(params MemoryParams) (*model.Memory, error)
		// Update replaces the content, the cover and the visibility of the given memory.
		Update(id string, params MemoryParams) (*model.Memory, error)
		// Delete removes the given memory.
		Delete(id string) error
	}

	memoryService struct {
		db        database.Client
		principal model.Principal
	}
)

// NewMemory returns a new MemoryService.
func NewMemory(db database.Client, principal model.Principal) MemoryService {
	return &memoryService{
		db:        db,
		principal: principal,
	}
}

func (s *memoryService) List() ([]*model.Memory, error) {
	if !s.principal.Enforced {
		return s.db.FindMemories()
	}
	return s.db.FindMemoriesByUserID(s.principal.UserID)
}

func (s *memoryService) Get(id string) (*model.Memory, error) {
	memory, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err = CanRead(s.principal, memory).Err(); err != nil {
		return nil, err
	}
	return memory, nil
}

func (s *memoryService) Create(params MemoryParams) (*model.Memory, error) {
	memory := model.NewMemory(s.principal.UserID)
	params.apply(memory)

	if err := s.db.Save(memory); err != nil {
		return nil, errors.Wrap(err, "could not persist memory")
	}
	return memory, nil
}

func (s *memoryService) Update(id string, params MemoryParams) (*model.Memory, error) {
	memory, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err = CanWrite(s.principal, memory).Err(); err != nil {
		return nil, err
	}

	params.apply(memory)
	if err = s.db.Save(memory); err != nil {
		return nil, errors.Wrap(err, "could not persist memory")
	}
	return memory, nil
}

func (s *memoryService) Delete(id string) error {
	memory, err := s.find(id)
	if err != nil {
		return err
	}

	if err = CanWrite(s.principal, memory).Err(); err != nil {
		return err
	}

	err = s.db.Delete(memory)
	if s.db.IsNotFound(err) {
		// Deleted in the meantime.
		return apierror.NotFound("Memory not found.")
	}
	return errors.Wrap(err, "could not delete memory")
}

func (s *memoryService) find(id string) (*model.Memory, error) {
	memory, err := s.db.FindMemory(id)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, apierror.NotFound("Memory not found.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return memory, nil
}

// apply copies the params into the given memory.
// Owner, id and creation date are left untouched.
func (p MemoryParams) apply(m *model.Memory) {
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.CoverURL != nil {
		m.CoverURL = *p.CoverURL
	}
	m.IsPublic = bool(p.IsPublic)
}
