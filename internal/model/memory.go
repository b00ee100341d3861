package model

// A Memory represents a database record.
// It is a journal entry owned by a single user.
type Memory struct {
	Base `msgpack:",inline" codec:",inline" storm:"inline"`

	UserID   string `json:"userId"   msgpack:"user_id"   codec:"user_id"   storm:"index"`
	Content  string `json:"content"  msgpack:"content"   codec:"content"`
	CoverURL string `json:"coverUrl" msgpack:"cover_url" codec:"cover_url"`
	IsPublic bool   `json:"isPublic" msgpack:"is_public" codec:"is_public"`
}

// NewMemory returns a new memory owned by the given user.
func NewMemory(userID string) *Memory {
	return &Memory{
		UserID: userID,
	}
}

// IsOwnedBy returns true if the memory belongs to the given user.
func (m *Memory) IsOwnedBy(userID string) bool {
	return m.UserID == userID
}
