package serializer

import (
	"time"

	"github.com/mdouchement/spacetime/internal/model"
)

// ExcerptLength is the number of characters of a memory content kept in lists.
const ExcerptLength = 115

// Memory serializes the render of a memory.
func Memory(m *model.Memory) map[string]any {
	return map[string]any{
		"id":        m.ID,
		"userId":    m.UserID,
		"content":   m.Content,
		"coverUrl":  m.CoverURL,
		"isPublic":  m.IsPublic,
		"createdAt": utc(m.GetCreatedAt()),
		"updatedAt": utc(m.GetUpdatedAt()),
	}
}

// MemoryExcerpt serializes the list render of a memory.
func MemoryExcerpt(m *model.Memory) map[string]any {
	return map[string]any{
		"id":       m.ID,
		"coverUrl": m.CoverURL,
		"excerpt":  Excerpt(m.Content),
	}
}

// MemoryExcerpts serializes the list render of memories.
func MemoryExcerpts(m []*model.Memory) []map[string]any {
	memories := make([]map[string]any, len(m))
	for i, memory := range m {
		memories[i] = MemoryExcerpt(memory)
	}
	return memories
}

// Excerpt returns the first ExcerptLength characters of the given content followed by "...".
// The suffix is always appended, even on short contents.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + "..."
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
