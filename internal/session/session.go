// Package session holds the in-progress application form for one
// applicant and autosaves it as a draft.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"

	"github.com/google/uuid"
)

// Saver persists form drafts. Satisfied by draft.Store.
type Saver interface {
	Save(ctx context.Context, sessionID string, form *models.ApplicationForm) error
}

// DefaultDebounce batches bursts of keystroke-level edits into one draft
// write.
const DefaultDebounce = 750 * time.Millisecond

// FormSession serializes all edits to one applicant's form. Every update
// schedules a debounced draft save; only one save timer is ever pending.
type FormSession struct {
	mu       sync.Mutex
	id       string
	form     *models.ApplicationForm
	saver    Saver
	debounce time.Duration
	timer    *time.Timer
	closed   bool
	logger   logger.Logger
}

func New(id string, form *models.ApplicationForm, saver Saver, debounce time.Duration, log logger.Logger) *FormSession {
	if form == nil {
		form = &models.ApplicationForm{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FormSession{
		id:       id,
		form:     form,
		saver:    saver,
		debounce: debounce,
		logger:   log.WithFields(map[string]interface{}{"sessionID": id}),
	}
}

func (s *FormSession) ID() string {
	return s.id
}

// Snapshot returns a deep copy of the current form. Callers may inspect
// or serialize it without racing concurrent updates.
func (s *FormSession) Snapshot() *models.ApplicationForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneForm(s.form)
}

// Update applies a mutation to the form under the session lock and
// schedules a draft save.
func (s *FormSession) Update(fn func(form *models.ApplicationForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.form)
	s.scheduleSaveLocked()
}

// Prefill copies profile fields into empty applicant fields. A nil
// profile is a guest session and a no-op.
func (s *FormSession) Prefill(profile *models.UserProfile) {
	if profile == nil {
		return
	}
	s.Update(func(form *models.ApplicationForm) {
		a := &form.Applicant
		if a.FirstName == "" {
			a.FirstName = profile.FirstName
		}
		if a.LastName == "" {
			a.LastName = profile.LastName
		}
		if a.Email == "" {
			a.Email = profile.Email
		}
	})
}

// AddLeaseHolder appends a new lease holder with a stable ID and returns
// that ID. The ID keys later per-person updates, so entries survive list
// reordering.
func (s *FormSession) AddLeaseHolder() string {
	id := uuid.NewString()
	s.Update(func(form *models.ApplicationForm) {
		form.LeaseHolders = append(form.LeaseHolders, models.Person{ID: id})
	})
	return id
}

// AddGuarantor appends a new guarantor with a stable ID and returns it.
func (s *FormSession) AddGuarantor() string {
	id := uuid.NewString()
	s.Update(func(form *models.ApplicationForm) {
		form.Guarantors = append(form.Guarantors, models.Person{ID: id})
	})
	return id
}

// UpdatePerson mutates the lease holder or guarantor with the given ID.
// The containing slice is replaced rather than edited in place, so a
// previously returned Snapshot never changes under the caller.
func (s *FormSession) UpdatePerson(id string, fn func(p *models.Person)) bool {
	found := false
	s.Update(func(form *models.ApplicationForm) {
		if updated, ok := updateByID(form.LeaseHolders, id, fn); ok {
			form.LeaseHolders = updated
			found = true
			return
		}
		if updated, ok := updateByID(form.Guarantors, id, fn); ok {
			form.Guarantors = updated
			found = true
		}
	})
	return found
}

// RemovePerson deletes the lease holder or guarantor with the given ID.
func (s *FormSession) RemovePerson(id string) bool {
	found := false
	s.Update(func(form *models.ApplicationForm) {
		if filtered, ok := removeByID(form.LeaseHolders, id); ok {
			form.LeaseHolders = filtered
			found = true
			return
		}
		if filtered, ok := removeByID(form.Guarantors, id); ok {
			form.Guarantors = filtered
			found = true
		}
	})
	return found
}

// ApplySameAsPrimary copies the applicant's current address onto the
// person as a snapshot. Later edits to the applicant's address do not
// propagate; the flag records intent at the moment it was set.
func (s *FormSession) ApplySameAsPrimary(id string) bool {
	found := false
	s.Update(func(form *models.ApplicationForm) {
		addr := form.Applicant.CurrentAddress
		apply := func(p *models.Person) {
			p.SameAsPrimary = true
			p.CurrentAddress = addr
		}
		if updated, ok := updateByID(form.LeaseHolders, id, apply); ok {
			form.LeaseHolders = updated
			found = true
			return
		}
		if updated, ok := updateByID(form.Guarantors, id, apply); ok {
			form.Guarantors = updated
			found = true
		}
	})
	return found
}

// Flush saves the draft immediately and cancels any pending timer.
func (s *FormSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	form := cloneForm(s.form)
	s.mu.Unlock()

	if s.saver == nil {
		return nil
	}
	return s.saver.Save(ctx, s.id, form)
}

// Close flushes the draft and stops further autosaves.
func (s *FormSession) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.Flush(ctx)
}

func (s *FormSession) scheduleSaveLocked() {
	if s.closed || s.saver == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Flush(ctx); err != nil {
			s.logger.Warn("draft autosave failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
}

func updateByID(persons []models.Person, id string, fn func(p *models.Person)) ([]models.Person, bool) {
	for i := range persons {
		if persons[i].ID == id {
			updated := make([]models.Person, len(persons))
			copy(updated, persons)
			fn(&updated[i])
			return updated, true
		}
	}
	return nil, false
}

func removeByID(persons []models.Person, id string) ([]models.Person, bool) {
	for i := range persons {
		if persons[i].ID == id {
			filtered := make([]models.Person, 0, len(persons)-1)
			filtered = append(filtered, persons[:i]...)
			filtered = append(filtered, persons[i+1:]...)
			return filtered, true
		}
	}
	return nil, false
}

func cloneForm(form *models.ApplicationForm) *models.ApplicationForm {
	data, err := json.Marshal(form)
	if err != nil {
		return &models.ApplicationForm{}
	}
	var clone models.ApplicationForm
	if err := json.Unmarshal(data, &clone); err != nil {
		return &models.ApplicationForm{}
	}
	return &clone
}
