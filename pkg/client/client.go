// Package client is an HTTP client of the memories API.
package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a memories server.
	Client interface {
		// BearerToken returns the JWT used for requests sent to the server.
		BearerToken() string
		// SetBearerToken sets the JWT used for requests sent to the server.
		SetBearerToken(token string)
		// List returns the excerpts of the memories.
		List() ([]Excerpt, error)
		// Get returns the memory for the given id.
		Get(id string) (*Memory, error)
		// Create creates a new memory.
		Create(m MemoryParams) (*Memory, error)
		// Update replaces the content, the cover and the visibility of the given memory.
		Update(id string, m MemoryParams) (*Memory, error)
		// Delete removes the given memory.
		Delete(id string) error
	}

	// A Memory is a journal entry.
	Memory struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Content   string    `json:"content"`
		CoverURL  string    `json:"coverUrl"`
		IsPublic  bool      `json:"isPublic"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	// An Excerpt is the list representation of a memory.
	Excerpt struct {
		ID       string `json:"id"`
		CoverURL string `json:"coverUrl"`
		Excerpt  string `json:"excerpt"`
	}

	// MemoryParams are the fields sent to create or update a memory.
	MemoryParams struct {
		Content  string `json:"content"`
		CoverURL string `json:"coverUrl"`
		IsPublic bool   `json:"isPublic"`
	}

	client struct {
		http     *http.Client
		endpoint string
		bearer   string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) List() ([]Excerpt, error) {
	excerpts := make([]Excerpt, 0)
	err := c.do(http.MethodGet, "/memories", nil, &excerpts)
	return excerpts, err
}

func (c *client) Get(id string) (*Memory, error) {
	var memory Memory
	if err := c.do(http.MethodGet, path.Join("/memories", id), nil, &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

func (c *client) Create(m MemoryParams) (*Memory, error) {
	var memory Memory
	if err := c.do(http.MethodPost, "/memories", m, &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

func (c *client) Update(id string, m MemoryParams) (*Memory, error) {
	var memory Memory
	if err := c.do(http.MethodPut, path.Join("/memories", id), m, &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

func (c *client) Delete(id string) error {
	return c.do(http.MethodDelete, path.Join("/memories", id), nil, nil)
}

func (c *client) do(method, p string, payload, render any) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, p)

	//
	// Build request
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize payload")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", "Bearer "+c.bearer)
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseError(res.Body, res.StatusCode)
	}

	if render == nil {
		return nil
	}

	//
	// Process response
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(render), "could not parse response")
}
