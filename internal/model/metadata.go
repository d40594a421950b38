package model

import (
	"fmt"
	"strings"
)

// Well-known tag names. Any other lowercase name is a custom tag.
const (
	TagTitle   = "title"
	TagArtist  = "artist"
	TagAlbum   = "album"
	TagTrack   = "track"
	TagYear    = "year"
	TagComment = "comment"
)

// Metadata is an ordered, multi-valued tag store.
//
// Tag names are normalized to lowercase. Every tag maps to a slice of
// values, even when only one value is present, so readers never have to
// distinguish between a scalar and a list. Keys keep their insertion
// order, which makes generated command lines deterministic.
//
// The zero value is an empty store ready for use.
//
// Example:
//
//	var m Metadata
//	m.Append("comment", "first")
//	m.Append("comment", "second")
//	m.Get("comment") // []string{"first", "second"}
type Metadata struct {
	keys []string
	tags map[string][]string
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{}
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Get returns a copy of the values stored for tag, or nil.
func (m *Metadata) Get(tag string) []string {
	if m == nil {
		return nil
	}
	values, ok := m.tags[normalizeTag(tag)]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// First returns the first value of tag, or "" when unset.
func (m *Metadata) First(tag string) string {
	if m == nil {
		return ""
	}
	values := m.tags[normalizeTag(tag)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether tag is present.
func (m *Metadata) Has(tag string) bool {
	if m == nil {
		return false
	}
	_, ok := m.tags[normalizeTag(tag)]
	return ok
}

// Set replaces all values of tag.
func (m *Metadata) Set(tag string, values ...string) {
	tag = normalizeTag(tag)
	if tag == "" {
		return
	}
	if m.tags == nil {
		m.tags = make(map[string][]string)
	}
	if _, ok := m.tags[tag]; !ok {
		m.keys = append(m.keys, tag)
	}
	m.tags[tag] = append([]string(nil), values...)
}

// Append adds value to the end of tag's sequence, creating the tag with a
// single-element sequence if it was unset.
func (m *Metadata) Append(tag, value string) {
	tag = normalizeTag(tag)
	if tag == "" {
		return
	}
	if m.tags == nil {
		m.tags = make(map[string][]string)
	}
	if _, ok := m.tags[tag]; !ok {
		m.keys = append(m.keys, tag)
	}
	m.tags[tag] = append(m.tags[tag], value)
}

// Keys returns tag names in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of distinct tags.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Empty reports whether no tag is set.
func (m *Metadata) Empty() bool {
	return m.Len() == 0
}

// Update copies every tag of other into m. On key collision the values
// from other replace the existing ones; they are not appended.
func (m *Metadata) Update(other *Metadata) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		m.Set(k, other.tags[k]...)
	}
}

// Clone returns a deep copy. Cloning nil yields an empty store.
func (m *Metadata) Clone() *Metadata {
	c := NewMetadata()
	c.Update(m)
	return c
}

// String renders the store for logs, e.g. Metadata{title=[Song] track=[3]}.
func (m *Metadata) String() string {
	var b strings.Builder
	b.WriteString("Metadata{")
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%v", k, m.tags[k])
	}
	b.WriteString("}")
	return b.String()
}
