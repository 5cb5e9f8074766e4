// Package draft persists in-progress post edits across page reloads.
//
// A draft is keyed by the identity of the post being edited. Identity 0 is
// the not-yet-saved "new post"; any positive identity is an existing post.
// The controller derives the key once and threads it through every call, so
// stores never reach into ambient session state.
package draft

import (
	"encoding/json"
	"strconv"
)

// Draft is a locally persisted snapshot of unsaved edits.
type Draft struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Store is a string-keyed draft persistence boundary.
//
// Load reports absent for keys that were never saved and for stored values
// that fail to decode; corruption is indistinguishable from absence by
// contract. Clear of an absent key is not an error.
type Store interface {
	Save(key string, d Draft) error
	Load(key string) (Draft, bool)
	Clear(key string) error
}

// Key derives the storage key for a post identity.
func Key(postID int) string {
	if postID <= 0 {
		return "draft:new"
	}
	return "draft:" + strconv.Itoa(postID)
}

// Encode returns the wire form of a draft, {"title":...,"text":...}.
func Encode(d Draft) string {
	b, _ := json.Marshal(d)
	return string(b)
}

// Decode parses the wire form. Malformed input reports false.
func Decode(s string) (Draft, bool) {
	var d Draft
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return Draft{}, false
	}
	return d, true
}
