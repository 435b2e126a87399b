package services

import (
	"context"
	"io"

	"employee-stats/config"
	"employee-stats/models"
	"employee-stats/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, utils.LevelDebug) }

// fakeStore answers lookups from a fixed record list.
type fakeStore struct {
	records []models.EmployeeRecord
	err     error
	calls   int
	lastUID []string
}

func (f *fakeStore) FetchByUIDs(_ context.Context, uids []string) ([]models.EmployeeRecord, error) {
	f.calls++
	f.lastUID = uids
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(uids))
	for _, u := range uids {
		want[u] = true
	}
	var out []models.EmployeeRecord
	for _, r := range f.records {
		if want[r.UID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func newTestProcessor(store *fakeStore, mode ParseMode) *StatsProcessor {
	logger := newTestLogger()
	normalizer := NewNormalizer(config.DefaultRules())
	return NewStatsProcessor(
		NewParser(mode, logger),
		NewResolver(store, "Player", "Player Name", logger),
		NewAggregator(normalizer, logger),
		logger,
	)
}

// exampleRecords are the two employees of the end-to-end example.
func exampleRecords() []models.EmployeeRecord {
	return []models.EmployeeRecord{
		{EmpID: "1", EmpName: "Alice", Classification: "HO", Division: "TECH", Site: "JAKARTA - HQ", UID: "U100"},
		{EmpID: "2", EmpName: "Bob", Classification: "Branch", Department: "SALES", Site: "SURABAYA", UID: "U200"},
	}
}
