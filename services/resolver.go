package services

import (
	"context"
	"time"

	"employee-stats/models"
	"employee-stats/storage"
	"employee-stats/utils"
)

// winnerRanks is how many leading rows are tried when picking the winner.
const winnerRanks = 3

// Resolution is the outcome of joining parsed rows against the record store.
type Resolution struct {
	Keys    []string
	Records []models.EmployeeRecord
	Winner  models.Winner
}

// Resolver joins parsed rows to employee records by the key column.
type Resolver struct {
	store      storage.RecordStore
	keyColumn  string
	nameColumn string
	logger     *utils.Logger
}

// NewResolver creates a Resolver reading join keys from keyColumn.
// nameColumn may be empty.
func NewResolver(store storage.RecordStore, keyColumn, nameColumn string, logger *utils.Logger) *Resolver {
	return &Resolver{
		store:      store,
		keyColumn:  keyColumn,
		nameColumn: nameColumn,
		logger:     logger,
	}
}

// Resolve issues one bulk lookup for every distinct key in rows and picks the winner.
// A store failure is returned as *LookupFailedError.
func (r *Resolver) Resolve(ctx context.Context, rows []models.RawRow) (*Resolution, error) {
	keys := ExtractJoinKeys(rows, r.keyColumn)

	var records []models.EmployeeRecord
	if len(keys) > 0 {
		start := time.Now()
		fetched, err := r.store.FetchByUIDs(ctx, keys)
		lookupDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, &LookupFailedError{Keys: len(keys), Cause: err}
		}
		records = fetched
	} else {
		r.logger.Warn("[resolver] No usable %q values in the pasted rows, skipping lookup", r.keyColumn)
	}

	winner := PickWinner(RankedKeys(rows, r.keyColumn, winnerRanks), IndexByUID(records))
	if len(rows) > 0 && r.nameColumn != "" {
		if name := rows[0].Get(r.nameColumn); name != models.NotAvailable {
			winner.DisplayName = name
		}
	}

	r.logger.Info("[resolver] %d keys → %d records, winner rank %d", len(keys), len(records), winner.Rank)
	return &Resolution{Keys: keys, Records: records, Winner: winner}, nil
}

// ExtractJoinKeys returns the distinct keys of rows in first-seen order,
// skipping cells that hold models.NotAvailable.
func ExtractJoinKeys(rows []models.RawRow, keyColumn string) []string {
	set := utils.NewKeySet()
	for _, row := range rows {
		if key := row.Get(keyColumn); key != models.NotAvailable {
			set.Add(key)
		}
	}
	return set.Keys()
}

// RankedKeys returns the key of each of the first n rows, in rank order.
func RankedKeys(rows []models.RawRow, keyColumn string, n int) []string {
	if len(rows) < n {
		n = len(rows)
	}
	keys := make([]string, 0, n)
	for _, row := range rows[:n] {
		keys = append(keys, row.Get(keyColumn))
	}
	return keys
}

// IndexByUID maps uid to record. The first record seen for a uid wins.
func IndexByUID(records []models.EmployeeRecord) map[string]models.EmployeeRecord {
	index := make(map[string]models.EmployeeRecord, len(records))
	for _, rec := range records {
		if _, exists := index[rec.UID]; !exists {
			index[rec.UID] = rec
		}
	}
	return index
}

// PickWinner tries candidates in order and returns the first one present in index.
// With no hit it returns the placeholder winner.
func PickWinner(candidates []string, index map[string]models.EmployeeRecord) models.Winner {
	for i, key := range candidates {
		if key == models.NotAvailable {
			continue
		}
		if rec, ok := index[key]; ok {
			return models.Winner{Record: rec, Rank: i + 1, Found: true}
		}
	}
	return models.Winner{Record: models.PlaceholderRecord()}
}
