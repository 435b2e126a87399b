package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"employee-stats/models"
	"employee-stats/utils"
)

// PostgresStore reads employee records from PostgreSQL. It never writes.
type PostgresStore struct {
	db          *sqlx.DB
	hasGrouping bool
}

// employeeRow mirrors the projection; every column may be NULL.
type employeeRow struct {
	EmpID          sql.NullString `db:"empid"`
	EmpName        sql.NullString `db:"empname"`
	Classification sql.NullString `db:"classification"`
	Division       sql.NullString `db:"division"`
	Department     sql.NullString `db:"department"`
	Site           sql.NullString `db:"site"`
	Directorate    sql.NullString `db:"directorate"`
	Grouping       sql.NullString `db:"grouping"`
	UID            sql.NullString `db:"uid"`
}

func (r employeeRow) record() models.EmployeeRecord {
	return models.EmployeeRecord{
		EmpID:          r.EmpID.String,
		EmpName:        r.EmpName.String,
		Classification: r.Classification.String,
		Division:       r.Division.String,
		Department:     r.Department.String,
		Site:           r.Site.String,
		Directorate:    r.Directorate.String,
		Grouping:       r.Grouping.String,
		UID:            r.UID.String,
	}
}

// NewPostgresStore opens a connection to PostgreSQL and waits for it to answer.
// hasGrouping is false for schemas that predate the grouping column.
func NewPostgresStore(ctx context.Context, dsn string, retries int, hasGrouping bool, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: retries, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return NewPostgresStoreFromDB(db, hasGrouping), nil
}

// NewPostgresStoreFromDB wraps an existing handle.
func NewPostgresStoreFromDB(db *sqlx.DB, hasGrouping bool) *PostgresStore {
	return &PostgresStore{db: db, hasGrouping: hasGrouping}
}

func (ps *PostgresStore) projection() string {
	grouping := `NULL::text AS "grouping"`
	if ps.hasGrouping {
		grouping = `"grouping"`
	}
	return `empid::text AS empid, empname, classification, division, department,
		site, directorate, uid, ` + grouping
}

// FetchByUIDs runs one bulk lookup for every uid in uids.
func (ps *PostgresStore) FetchByUIDs(ctx context.Context, uids []string) ([]models.EmployeeRecord, error) {
	if len(uids) == 0 {
		return []models.EmployeeRecord{}, nil
	}

	query := `SELECT ` + ps.projection() + `
		FROM employees
		WHERE uid = ANY($1)`

	var rows []employeeRow
	if err := ps.db.SelectContext(ctx, &rows, query, pq.Array(uids)); err != nil {
		return nil, fmt.Errorf("postgres: fetch by uid: %w", err)
	}

	records := make([]models.EmployeeRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Count returns the number of employees that carry a uid.
func (ps *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := ps.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM employees WHERE uid IS NOT NULL`); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
