package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet is a set of foreign ids stored as a jsonb array. Add and Remove are
// idempotent so edge mutations stay safe under duplicate or interleaved
// requests; membership, not the operation count, is the state.
type IDSet []uint

func (s IDSet) Has(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id present. No-op if already a member.
func (s IDSet) Add(id uint) IDSet {
	if s.Has(id) {
		return s
	}
	return append(s, id)
}

// Remove returns the set with id absent. No-op if not a member.
func (s IDSet) Remove(id uint) IDSet {
	out := s[:0]
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		s = IDSet{}
	}
	return json.Marshal(s)
}

func (s *IDSet) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// CommentThread is a post's embedded comment sequence stored as a jsonb array.
type CommentThread []Comment

// FindByCid returns the comment with the given cid, or nil. The returned
// pointer aliases the slice element so callers can append replies in place.
func (t CommentThread) FindByCid(cid string) *Comment {
	for i := range t {
		if t[i].Cid == cid {
			return &t[i]
		}
	}
	return nil
}

func (t CommentThread) Value() (driver.Value, error) {
	if t == nil {
		t = CommentThread{}
	}
	return json.Marshal(t)
}

func (t *CommentThread) Scan(value interface{}) error {
	return scanJSON(value, t)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
