package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/leadscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leadscan.ResultService = (*ResultService)(nil)

// ResultService implements leadscan.ResultService using SQLite.
type ResultService struct {
	db *DB

	// HistoryLimit is the number of results kept per user.
	// Defaults to leadscan.HistoryLimit.
	HistoryLimit int
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db, HistoryLimit: leadscan.HistoryLimit}
}

// fingerprint computes an xxHash over the URL and contact lists so that
// repeated scans with unchanged contacts can be recognised.
func fingerprint(r *leadscan.Result) string {
	d := xxhash.New()
	_, _ = d.WriteString(r.URL)
	for _, e := range r.Emails {
		_, _ = d.WriteString("\x00e" + e)
	}
	for _, p := range r.PhoneNumbers {
		_, _ = d.WriteString("\x00p" + p)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, d.Sum64())
	return hex.EncodeToString(b)
}

const resultColumns = "id, user_id, url, emails, phone_numbers, fingerprint, scanned_at"

// CreateResult saves a result and prunes the user's history to the most
// recent HistoryLimit entries.
func (s *ResultService) CreateResult(ctx context.Context, result *leadscan.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	// Work on a copy so the caller's result only changes once the
	// transaction has committed.
	stored := *result
	if stored.Emails == nil {
		stored.Emails = []string{}
	}
	if stored.PhoneNumbers == nil {
		stored.PhoneNumbers = []string{}
	}
	if stored.ScannedAt.IsZero() {
		stored.ScannedAt = time.Now()
	}
	// Stored with second precision.
	stored.ScannedAt = stored.ScannedAt.UTC().Truncate(time.Second)
	stored.ID = uuid.New().String()
	stored.Fingerprint = fingerprint(&stored)

	emails, err := json.Marshal(stored.Emails)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	phones, err := json.Marshal(stored.PhoneNumbers)
	if err != nil {
		return fmt.Errorf("failed to encode phone numbers: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO results (`+resultColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.UserID, stored.URL, string(emails), string(phones),
		stored.Fingerprint, stored.ScannedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if s.HistoryLimit > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM results
			WHERE user_id = ? AND id NOT IN (
				SELECT id FROM results
				WHERE user_id = ?
				ORDER BY scanned_at DESC, rowid DESC
				LIMIT ?
			)
		`, stored.UserID, stored.UserID, s.HistoryLimit); err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	*result = stored
	return nil
}

// FindResultByID retrieves a result by ID.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*leadscan.Result, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+resultColumns+" FROM results WHERE id = ?", id)

	result, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, leadscan.Errorf(leadscan.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindResults retrieves results matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter leadscan.ResultFilter) ([]*leadscan.Result, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + resultColumns + " FROM results WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY scanned_at DESC, rowid DESC")

	// SQLite requires LIMIT before OFFSET.
	if filter.Limit <= 0 && filter.Offset > 0 {
		filter.Limit = -1
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*leadscan.Result{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// DeleteResult permanently removes a result.
func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return leadscan.Errorf(leadscan.ENOTFOUND, "result not found")
	}

	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*leadscan.Result, error) {
	var r leadscan.Result
	var emails, phones, scannedAt string

	if err := row.Scan(&r.ID, &r.UserID, &r.URL, &emails, &phones, &r.Fingerprint, &scannedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(emails), &r.Emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	if err := json.Unmarshal([]byte(phones), &r.PhoneNumbers); err != nil {
		return nil, fmt.Errorf("failed to decode phone numbers: %w", err)
	}

	var err error
	r.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at")
	if err != nil {
		return nil, err
	}

	return &r, nil
}
