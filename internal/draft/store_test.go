package draft

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, "applicationFormData", time.Hour, logger.NewNoOpLogger()), mr
}

func TestStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	form := &models.ApplicationForm{
		Applicant: models.Applicant{
			Person: models.Person{
				FirstName: "Dana",
				LastName:  "Reyes",
				Email:     "dana@example.com",
			},
			LeaseTermMonths: 12,
		},
		Pets: []models.Pet{{Type: "dog", Name: "Biscuit", Age: "3", Weight: "40"}},
	}

	require.NoError(t, store.Save(ctx, "sess-1", form))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", loaded.Applicant.FirstName)
	assert.Equal(t, 12, loaded.Applicant.LeaseTermMonths)
	require.Len(t, loaded.Pets, 1)
	assert.Equal(t, "Biscuit", loaded.Pets[0].Name)
}

func TestStore_LoadMissingReturnsEmptyForm(t *testing.T) {
	store, _ := newTestStore(t)

	form, err := store.Load(context.Background(), "no-such-session")
	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Empty(t, form.Applicant.FirstName)
	assert.Empty(t, form.Pets)
}

func TestStore_LoadCorruptDraftReturnsEmptyForm(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("applicationFormData:sess-2", "{not valid json")

	form, err := store.Load(context.Background(), "sess-2")
	require.NoError(t, err)
	require.NotNil(t, form)
	assert.Empty(t, form.Applicant.Email)
}

func TestStore_LoadRepairsIndexedObjectArrays(t *testing.T) {
	store, mr := newTestStore(t)

	// Drafts written by an older serializer stored lists as {"0": ..., "1": ...}.
	legacy := map[string]interface{}{
		"applicant": map[string]interface{}{"firstName": "Dana", "lastName": "Reyes"},
		"pets": map[string]interface{}{
			"1": map[string]interface{}{"type": "cat", "name": "Mochi"},
			"0": map[string]interface{}{"type": "dog", "name": "Biscuit"},
		},
		"leaseHolders": map[string]interface{}{
			"0": map[string]interface{}{"firstName": "Sam", "lastName": "Reyes"},
		},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	mr.Set("applicationFormData:sess-3", string(data))

	form, err := store.Load(context.Background(), "sess-3")
	require.NoError(t, err)
	require.Len(t, form.Pets, 2)
	assert.Equal(t, "Biscuit", form.Pets[0].Name)
	assert.Equal(t, "Mochi", form.Pets[1].Name)
	require.Len(t, form.LeaseHolders, 1)
	assert.Equal(t, "Sam", form.LeaseHolders[0].FirstName)
}

func TestStore_LoadCoercesBadListFieldToEmpty(t *testing.T) {
	store, mr := newTestStore(t)

	// A single mangled list field must not cost the applicant the rest
	// of the draft.
	mr.Set("applicationFormData:sess-4",
		`{"applicant":{"firstName":"Jordan","lastName":"Reyes"},"pets":"corrupt","vehicles":42}`)

	form, err := store.Load(context.Background(), "sess-4")
	require.NoError(t, err)
	assert.Equal(t, "Jordan", form.Applicant.FirstName)
	assert.Empty(t, form.Pets)
	assert.Empty(t, form.Vehicles)
}

func TestStore_Clear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-4", &models.ApplicationForm{}))
	assert.True(t, mr.Exists("applicationFormData:sess-4"))

	require.NoError(t, store.Clear(ctx, "sess-4"))
	assert.False(t, mr.Exists("applicationFormData:sess-4"))
}

func TestStore_SaveSetsTTL(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), "sess-5", &models.ApplicationForm{}))
	ttl := mr.TTL("applicationFormData:sess-5")
	assert.Equal(t, time.Hour, ttl)
}

func TestStore_LoadStorageError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewStore(rdb, "applicationFormData", time.Hour, logger.NewNoOpLogger())

	mock.ExpectGet("applicationFormData:sess-6").SetErr(assert.AnError)

	_, err := store.Load(context.Background(), "sess-6")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
