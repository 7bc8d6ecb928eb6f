package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	mu    sync.Mutex
	saves []*models.ApplicationForm
}

func (r *recordingSaver) Save(_ context.Context, _ string, form *models.ApplicationForm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, form)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func newTestSession(saver Saver, debounce time.Duration) *FormSession {
	return New("sess-1", &models.ApplicationForm{}, saver, debounce, logger.NewNoOpLogger())
}

func TestFormSession_Prefill(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)

	s.Prefill(&models.UserProfile{UID: "u1", FirstName: "Dana", LastName: "Reyes", Email: "dana@example.com"})

	form := s.Snapshot()
	assert.Equal(t, "Dana", form.Applicant.FirstName)
	assert.Equal(t, "dana@example.com", form.Applicant.Email)
}

func TestFormSession_PrefillDoesNotOverwrite(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	s.Update(func(form *models.ApplicationForm) {
		form.Applicant.Email = "typed@example.com"
	})

	s.Prefill(&models.UserProfile{Email: "profile@example.com", FirstName: "Dana"})

	form := s.Snapshot()
	assert.Equal(t, "typed@example.com", form.Applicant.Email)
	assert.Equal(t, "Dana", form.Applicant.FirstName)
}

func TestFormSession_PrefillGuestNoOp(t *testing.T) {
	saver := &recordingSaver{}
	s := newTestSession(saver, time.Millisecond)

	s.Prefill(nil)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, saver.count())
}

func TestFormSession_UpdatePersonByID(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	id := s.AddLeaseHolder()
	s.AddLeaseHolder()

	ok := s.UpdatePerson(id, func(p *models.Person) {
		p.FirstName = "Sam"
	})

	require.True(t, ok)
	form := s.Snapshot()
	require.Len(t, form.LeaseHolders, 2)
	assert.Equal(t, "Sam", form.LeaseHolders[0].FirstName)
	assert.Empty(t, form.LeaseHolders[1].FirstName)
}

func TestFormSession_UpdateUnknownPerson(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	s.AddGuarantor()

	assert.False(t, s.UpdatePerson("nope", func(p *models.Person) {}))
}

func TestFormSession_SnapshotIsolatedFromUpdates(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	id := s.AddLeaseHolder()
	s.UpdatePerson(id, func(p *models.Person) { p.FirstName = "Sam" })

	before := s.Snapshot()
	s.UpdatePerson(id, func(p *models.Person) { p.FirstName = "Alex" })

	assert.Equal(t, "Sam", before.LeaseHolders[0].FirstName)
	assert.Equal(t, "Alex", s.Snapshot().LeaseHolders[0].FirstName)
}

func TestFormSession_RemovePerson(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	id1 := s.AddLeaseHolder()
	id2 := s.AddLeaseHolder()

	require.True(t, s.RemovePerson(id1))

	form := s.Snapshot()
	require.Len(t, form.LeaseHolders, 1)
	assert.Equal(t, id2, form.LeaseHolders[0].ID)
	assert.False(t, s.RemovePerson(id1))
}

func TestFormSession_ApplySameAsPrimaryIsSnapshot(t *testing.T) {
	s := newTestSession(&recordingSaver{}, time.Hour)
	s.Update(func(form *models.ApplicationForm) {
		form.Applicant.CurrentAddress = models.Address{Street: "12 Oak St", City: "Austin", State: "TX", Zip: "78701"}
	})
	id := s.AddGuarantor()

	require.True(t, s.ApplySameAsPrimary(id))

	// A later applicant address change must not propagate.
	s.Update(func(form *models.ApplicationForm) {
		form.Applicant.CurrentAddress.Street = "99 Elm St"
	})

	form := s.Snapshot()
	assert.True(t, form.Guarantors[0].SameAsPrimary)
	assert.Equal(t, "12 Oak St", form.Guarantors[0].CurrentAddress.Street)
}

func TestFormSession_DebouncedSaveCoalesces(t *testing.T) {
	saver := &recordingSaver{}
	s := newTestSession(saver, 50*time.Millisecond)

	for i := 0; i < 10; i++ {
		s.Update(func(form *models.ApplicationForm) {
			form.Notes = "edit"
		})
	}

	assert.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 10*time.Millisecond)

	// No further timer pending.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, saver.count())
}

func TestFormSession_FlushSavesImmediately(t *testing.T) {
	saver := &recordingSaver{}
	s := newTestSession(saver, time.Hour)
	s.Update(func(form *models.ApplicationForm) { form.Notes = "hello" })

	require.NoError(t, s.Flush(context.Background()))

	require.Equal(t, 1, saver.count())
	assert.Equal(t, "hello", saver.saves[0].Notes)
}

func TestFormSession_FlushWithoutSaver(t *testing.T) {
	s := newTestSession(nil, time.Hour)
	s.Update(func(form *models.ApplicationForm) { form.Notes = "in memory only" })

	require.NoError(t, s.Flush(context.Background()))
	require.NoError(t, s.Close(context.Background()))
}

func TestFormSession_CloseStopsAutosave(t *testing.T) {
	saver := &recordingSaver{}
	s := newTestSession(saver, 20*time.Millisecond)

	s.Update(func(form *models.ApplicationForm) { form.Notes = "before close" })
	require.NoError(t, s.Close(context.Background()))
	flushed := saver.count()

	s.Update(func(form *models.ApplicationForm) { form.Notes = "after close" })
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, flushed, saver.count())
}
