// Package model defines the memo entity.
package model

import (
	"strings"
	"time"

	"github.com/rcliao/memo/internal/apperr"
)

// Memo is one stored note. The zero value is not a valid memo; use New.
type Memo struct {
	id        int64
	hasID     bool
	content   string
	createdAt time.Time
}

type params struct {
	id           int64
	hasID        bool
	createdAt    time.Time
	hasCreatedAt bool
}

// Option sets an optional field on a memo under construction.
type Option func(*params)

// WithID sets the store-assigned identity.
func WithID(id int64) Option {
	return func(p *params) {
		p.id = id
		p.hasID = true
	}
}

// WithCreatedAt sets the creation time. Without it the memo is stamped with
// the current time.
func WithCreatedAt(t time.Time) Option {
	return func(p *params) {
		p.createdAt = t
		p.hasCreatedAt = true
	}
}

// New validates its inputs and returns a memo. Checks run in order: identity,
// content, creation time. The first failure is returned as a validation
// error naming the field.
func New(content string, opts ...Option) (Memo, error) {
	var p params
	for _, opt := range opts {
		opt(&p)
	}

	if p.hasID && p.id < 0 {
		return Memo{}, apperr.Validation("id", "must not be negative")
	}
	if strings.TrimSpace(content) == "" {
		return Memo{}, apperr.Validation("content", "must not be empty")
	}
	createdAt := time.Now()
	if p.hasCreatedAt {
		if p.createdAt.IsZero() {
			return Memo{}, apperr.Validation("created_at", "must be a valid time")
		}
		createdAt = p.createdAt
	}

	return Memo{
		id:        p.id,
		hasID:     p.hasID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

// ID returns the store-assigned identity and whether one is set.
func (m Memo) ID() (int64, bool) {
	return m.id, m.hasID
}

// Content returns the full text.
func (m Memo) Content() string {
	return m.content
}

// CreatedAt returns the creation time.
func (m Memo) CreatedAt() time.Time {
	return m.createdAt
}

// FirstLine returns the text up to the first newline, used as the title.
func (m Memo) FirstLine() string {
	line, _, _ := strings.Cut(m.content, "\n")
	return line
}
