package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoSnapshot reports an empty snapshot database.
var ErrNoSnapshot = errors.New("no snapshot captured yet")

const dumpColumns = "id, session_id, captured_at, tool_version, element_count, digest, content"

// Save records a dump. Content identical to an existing row refreshes that
// row's capture metadata instead of adding a copy; created reports whether a
// new row was written. Missing session IDs and capture times are filled in.
func (s *Store) Save(ctx context.Context, dump Dump) (saved Dump, created bool, err error) {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(dump.Content) == "" {
		return Dump{}, false, errors.New("snapshot content is empty")
	}
	if dump.SessionID == "" {
		dump.SessionID = uuid.NewString()
	}
	if dump.CapturedAt.IsZero() {
		dump.CapturedAt = time.Now()
	}
	dump.CapturedAt = dump.CapturedAt.UTC()
	dump.Digest = Digest(dump.Content)

	err = retryOnBusy(ctx, func() error {
		saved, created, err = s.save(ctx, dump)
		return err
	})
	if err != nil {
		return Dump{}, false, fmt.Errorf("save snapshot: %w", err)
	}
	return saved, created, nil
}

func (s *Store) save(ctx context.Context, dump Dump) (Dump, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Dump{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM dumps WHERE digest = ?", dump.Digest).Scan(&id)
	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, execErr := tx.ExecContext(ctx,
			`INSERT INTO dumps (session_id, captured_at, tool_version, element_count, digest, content)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			dump.SessionID, dump.CapturedAt.UnixNano(), dump.ToolVersion, dump.ElementCount, dump.Digest, dump.Content,
		)
		if execErr != nil {
			return Dump{}, false, execErr
		}
		if id, err = res.LastInsertId(); err != nil {
			return Dump{}, false, err
		}
		created = true
	case err != nil:
		return Dump{}, false, err
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE dumps SET session_id = ?, captured_at = ?, tool_version = ?, element_count = ? WHERE id = ?`,
			dump.SessionID, dump.CapturedAt.UnixNano(), dump.ToolVersion, dump.ElementCount, id,
		); err != nil {
			return Dump{}, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Dump{}, false, err
	}
	dump.ID = id
	return dump, created, nil
}

// Latest returns the most recently captured dump, or ErrNoSnapshot.
func (s *Store) Latest(ctx context.Context) (Dump, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+dumpColumns+" FROM dumps ORDER BY captured_at DESC, id DESC LIMIT 1")
	dump, err := scanDump(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Dump{}, ErrNoSnapshot
	}
	if err != nil {
		return Dump{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return dump, nil
}

// List returns capture metadata, newest first. Content is left empty.
func (s *Store) List(ctx context.Context) ([]Dump, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_id, captured_at, tool_version, element_count, digest, '' FROM dumps ORDER BY captured_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Dump
	for rows.Next() {
		dump, err := scanDump(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, dump)
	}
	return out, rows.Err()
}

// Count returns the number of stored dumps.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM dumps").Scan(&count); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return count, nil
}

// Prune deletes all but the keep most recent dumps and returns how many rows
// were removed. keep below 1 is treated as 1 so the latest capture survives.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	ctx = ensureContext(ctx)
	keep = max(keep, 1)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM dumps WHERE id NOT IN (
				SELECT id FROM dumps ORDER BY captured_at DESC, id DESC LIMIT ?
			)`, keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDump(row rowScanner) (Dump, error) {
	var (
		dump       Dump
		capturedAt int64
	)
	if err := row.Scan(&dump.ID, &dump.SessionID, &capturedAt, &dump.ToolVersion, &dump.ElementCount, &dump.Digest, &dump.Content); err != nil {
		return Dump{}, err
	}
	dump.CapturedAt = time.Unix(0, capturedAt).UTC()
	return dump, nil
}
