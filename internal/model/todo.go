package model

import (
	"encoding/json"
	"time"
)

// TimeLayout is the ISO-8601 form createdAt is persisted in (UTC, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Todo is the domain model for a todo entry.
// ID and CreatedAt never change after creation; only Content is edited.
type Todo struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Created returns CreatedAt in its persisted string form.
func (t Todo) Created() string {
	return t.CreatedAt.UTC().Format(TimeLayout)
}

// MarshalJSON writes createdAt in TimeLayout rather than RFC 3339 nano.
func (t Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		Content   string `json:"content"`
		CreatedAt string `json:"createdAt"`
	}{t.ID, t.Content, t.Created()})
}
