package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/mdouchement/spacetime/pkg/stormcodec"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

func open(database, codec string) (*storm.DB, error) {
	c, err := stormcodec.Lookup(codec)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, storm.Codec(c))
	return db, errors.Wrap(err, "could not get database connection")
}

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	db, err := open(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Init(&model.Memory{})
	return errors.Wrap(err, "could not init memory index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	db, err := open(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.ReIndex(&model.Memory{})
	return errors.Wrap(err, "could not ReIndex memories")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database, codec string) (Client, error) {
	db, err := open(database, codec)
	if err != nil {
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindMemory returns the memory for the given id (UUID).
func (c *strm) FindMemory(id string) (*model.Memory, error) {
	var memory model.Memory
	if err := c.db.One("ID", id, &memory); err != nil {
		return nil, errors.Wrap(err, "could not find memory")
	}
	return &memory, nil
}

// FindMemories returns all the memories ordered by creation date.
func (c *strm) FindMemories() ([]*model.Memory, error) {
	memories := make([]*model.Memory, 0)
	err := c.db.Select().OrderBy("CreatedAt").Find(&memories)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find memories")
	}
	return memories, nil
}

// FindMemoriesByUserID returns all the memories of the given user ordered by creation date.
func (c *strm) FindMemoriesByUserID(userID string) ([]*model.Memory, error) {
	memories := make([]*model.Memory, 0)
	err := c.db.Select(q.Eq("UserID", userID)).OrderBy("CreatedAt").Find(&memories)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find memories by user id")
	}
	return memories, nil
}

// DeleteMemoriesByUserID deletes all the memories of the given user.
func (c *strm) DeleteMemoriesByUserID(userID string) error {
	err := c.db.Select(q.Eq("UserID", userID)).Delete(&model.Memory{})
	if err != nil && !c.IsNotFound(err) {
		return errors.Wrap(err, "could not delete memories by user id")
	}
	return nil
}
