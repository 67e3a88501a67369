// Package edit tracks the one todo being edited and its unsaved text.
package edit

// Updater receives committed drafts.
type Updater interface {
	Update(id, content string) bool
}

// Session is either idle or editing exactly one todo. The zero value is idle.
type Session struct {
	editingID string
	draft     string
}

// Begin starts editing id with the draft seeded from current. Any draft for
// a previously edited todo is dropped.
func (s *Session) Begin(id, current string) {
	s.editingID = id
	s.draft = current
}

// SetDraft replaces the draft. Ignored while idle.
func (s *Session) SetDraft(text string) {
	if s.editingID == "" {
		return
	}
	s.draft = text
}

// Commit hands the draft to u and returns to idle. It reports the id that
// was committed, or ok=false when idle.
func (s *Session) Commit(u Updater) (id string, ok bool) {
	if s.editingID == "" {
		return "", false
	}
	id, draft := s.editingID, s.draft
	s.Reset()
	u.Update(id, draft)
	return id, true
}

// Cancel drops the draft without updating anything.
func (s *Session) Cancel() { s.Reset() }

// Reset returns to idle.
func (s *Session) Reset() {
	s.editingID = ""
	s.draft = ""
}

// Editing returns the id under edit, if any.
func (s *Session) Editing() (id string, ok bool) {
	return s.editingID, s.editingID != ""
}

func (s *Session) Draft() string { return s.draft }
