package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"employee-stats/models"
)

func rowsWithKeys(keys ...string) []models.RawRow {
	rows := make([]models.RawRow, len(keys))
	for i, k := range keys {
		rows[i] = models.RawRow{"Player": k, "Player Name": "name-" + k}
	}
	return rows
}

func TestExtractJoinKeysDistinctAndSkipsSentinel(t *testing.T) {
	rows := rowsWithKeys("U2", "U1", models.NotAvailable, "U2", "U3")
	rows = append(rows, models.RawRow{"Other": "x"})

	got := ExtractJoinKeys(rows, "Player")
	want := []string{"U2", "U1", "U3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractJoinKeys: got %v, want %v", got, want)
	}
}

func TestPickWinnerSkipsUnmatchedRanks(t *testing.T) {
	k2 := models.EmployeeRecord{EmpID: "2", UID: "K2"}
	index := IndexByUID([]models.EmployeeRecord{k2})

	w := PickWinner([]string{"K1", "K2", "K3"}, index)
	if !w.Found || w.Rank != 2 {
		t.Fatalf("winner: got rank %d found %v, want rank 2", w.Rank, w.Found)
	}
	if w.Record != k2 {
		t.Errorf("winner record: got %+v, want %+v", w.Record, k2)
	}
}

func TestPickWinnerPlaceholder(t *testing.T) {
	index := IndexByUID([]models.EmployeeRecord{{EmpID: "9", UID: "K9"}})

	w := PickWinner([]string{"K1", "K2", "K3"}, index)
	if w.Found || w.Rank != 0 {
		t.Errorf("expected placeholder, got rank %d found %v", w.Rank, w.Found)
	}
	if w.Record.EmpID != "N/A" {
		t.Errorf("placeholder empid: got %q, want N/A", w.Record.EmpID)
	}
	if w.Record.EmpName != models.NoWinnerName {
		t.Errorf("placeholder empname: got %q", w.Record.EmpName)
	}
}

func TestPickWinnerOnlyFirstThreeRanks(t *testing.T) {
	rows := rowsWithKeys("K1", "K2", "K3", "K4")
	index := IndexByUID([]models.EmployeeRecord{{EmpID: "4", UID: "K4"}})

	w := PickWinner(RankedKeys(rows, "Player", winnerRanks), index)
	if w.Found {
		t.Errorf("rank four must not win, got %+v", w)
	}
}

func TestIndexByUIDFirstRecordWins(t *testing.T) {
	index := IndexByUID([]models.EmployeeRecord{
		{EmpID: "1", UID: "U1"},
		{EmpID: "2", UID: "U1"},
	})
	if index["U1"].EmpID != "1" {
		t.Errorf("duplicate uid: got empid %q, want 1", index["U1"].EmpID)
	}
}

func TestResolveSingleBulkLookup(t *testing.T) {
	store := &fakeStore{records: exampleRecords()}
	r := NewResolver(store, "Player", "Player Name", newTestLogger())

	res, err := r.Resolve(context.Background(), rowsWithKeys("U100", "U200", "U100", models.NotAvailable))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("lookups: got %d, want 1", store.calls)
	}
	if !reflect.DeepEqual(store.lastUID, []string{"U100", "U200"}) {
		t.Errorf("lookup keys: got %v", store.lastUID)
	}
	if len(res.Records) != 2 {
		t.Errorf("records: got %d, want 2", len(res.Records))
	}
	if res.Winner.Record.UID != "U100" || res.Winner.DisplayName != "name-U100" {
		t.Errorf("winner: got %+v", res.Winner)
	}
}

func TestResolveNoKeysSkipsLookup(t *testing.T) {
	store := &fakeStore{records: exampleRecords()}
	r := NewResolver(store, "Player", "", newTestLogger())

	res, err := r.Resolve(context.Background(), rowsWithKeys(models.NotAvailable))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 0 {
		t.Errorf("lookups: got %d, want 0", store.calls)
	}
	if res.Winner.Found {
		t.Errorf("expected placeholder winner")
	}
}

func TestResolveLookupFailure(t *testing.T) {
	boom := errors.New("store unreachable")
	r := NewResolver(&fakeStore{err: boom}, "Player", "", newTestLogger())

	_, err := r.Resolve(context.Background(), rowsWithKeys("U100"))

	var lookup *LookupFailedError
	if !errors.As(err, &lookup) {
		t.Fatalf("expected LookupFailedError, got %v", err)
	}
	if lookup.Keys != 1 || !errors.Is(err, boom) {
		t.Errorf("lookup error: got %+v", lookup)
	}
}

func TestWinnerBlock(t *testing.T) {
	w := PickWinner([]string{"U100"}, IndexByUID(exampleRecords()))
	block := w.Block()

	want := map[string]string{
		"empid":       "1",
		"empname":     "Alice",
		"department":  "",
		"site":        "JAKARTA - HQ",
		"directorate": "",
		"uid":         "U100",
	}
	if !reflect.DeepEqual(block, want) {
		t.Errorf("Block: got %v, want %v", block, want)
	}
}
