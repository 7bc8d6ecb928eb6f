// Package draft persists in-progress application forms to Redis so a
// returning applicant resumes where they left off.
package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix matches the slot name drafts have always been stored
// under, so existing drafts keep loading.
const DefaultKeyPrefix = "applicationFormData"

// arrayFields are the form keys that must deserialize as arrays. Older
// drafts serialized them as index-keyed objects; see coerceArrays.
var arrayFields = []string{
	"leaseHolders",
	"guarantors",
	"occupants",
	"pets",
	"vehicles",
	"documents",
}

type Store struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(rdb *redis.Client, prefix string, ttl time.Duration, log logger.Logger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "draft"}),
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Save serializes the whole form into the session's draft slot.
func (s *Store) Save(ctx context.Context, sessionID string, form *models.ApplicationForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		metrics.DraftSaves.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to serialize draft: %w", err)
	}

	if err := s.rdb.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		metrics.DraftSaves.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to save draft: %w", err)
	}

	metrics.DraftSaves.WithLabelValues("ok").Inc()
	return nil
}

// Load restores the draft for a session. A missing or unreadable draft
// yields a fresh empty form rather than an error: a corrupt draft must
// never lock an applicant out of the flow.
func (s *Store) Load(ctx context.Context, sessionID string) (*models.ApplicationForm, error) {
	data, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return &models.ApplicationForm{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	data = coerceArrays(data, s.logger)

	var form models.ApplicationForm
	if err := json.Unmarshal(data, &form); err != nil {
		s.logger.Warn("discarding corrupt draft", map[string]interface{}{
			"sessionID": sessionID,
			"error":     err.Error(),
		})
		return &models.ApplicationForm{}, nil
	}
	return &form, nil
}

// Clear deletes the session's draft, typically after submission.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, s.key(sessionID)).Err()
}

var emptyArray = json.RawMessage("[]")

// coerceArrays repairs drafts whose list fields were not stored as
// arrays. Index-keyed objects are reordered by their numeric key; any
// other non-array shape is replaced with an empty array so one bad field
// never costs the applicant the rest of the draft.
func coerceArrays(data []byte, log logger.Logger) []byte {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return data
	}

	changed := false
	for _, field := range arrayFields {
		raw, ok := top[field]
		if !ok {
			continue
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			continue
		}

		top[field] = coerceArrayField(trimmed)
		changed = true
	}

	if !changed {
		return data
	}

	log.Debug("repaired non-array list fields in draft", nil)
	fixed, err := json.Marshal(top)
	if err != nil {
		return data
	}
	return fixed
}

// coerceArrayField turns a single non-array list value into an array.
// Index-keyed objects keep their entries; everything else becomes empty.
func coerceArrayField(trimmed []byte) json.RawMessage {
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return emptyArray
	}

	var indexed map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &indexed); err != nil {
		return emptyArray
	}

	keys := make([]int, 0, len(indexed))
	byIndex := make(map[int]json.RawMessage, len(indexed))
	for k, v := range indexed {
		i, err := strconv.Atoi(k)
		if err != nil {
			return emptyArray
		}
		keys = append(keys, i)
		byIndex[i] = v
	}
	sort.Ints(keys)

	items := make([]json.RawMessage, 0, len(keys))
	for _, i := range keys {
		items = append(items, byIndex[i])
	}
	fixed, err := json.Marshal(items)
	if err != nil {
		return emptyArray
	}
	return fixed
}
