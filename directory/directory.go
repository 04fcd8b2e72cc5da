// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package directory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/council-ballot/models"
)

// Source supplies the authoritative candidate list for an election
type Source interface {
	Candidates(ctx context.Context, electionID string) ([]models.Candidate, error)
}

// Query filters and orders a candidate listing
type Query struct {
	Search string
	Sort   string
}

// Store caches candidate lists per election
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Refresh replaces the cached candidates of an election with a fresh list
// from src and returns that list.
func (s *Store) Refresh(ctx context.Context, electionID string, src Source) ([]models.Candidate, error) {
	candidates, err := src.Candidates(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM candidate WHERE election_id = $1`, electionID); err != nil {
		return nil, fmt.Errorf("failed to clear candidate cache: %w", err)
	}

	now := time.Now()
	for _, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate (election_id, id, name, photo, bio, activity, field_of_activity,
			                       biography, work, education, facebook_url, fetched_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, electionID, c.ID, c.Name, c.Photo, c.Bio, c.Activity, c.FieldOfActivity,
			c.Biography, c.Work, c.Education, c.FacebookURL, now)
		if err != nil {
			return nil, fmt.Errorf("failed to cache candidate %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit candidate cache: %w", err)
	}

	slog.Info("candidate cache refreshed", "election_id", electionID, "count", len(candidates))
	return candidates, nil
}

// List returns cached candidates of an election, filtered and sorted
func (s *Store) List(ctx context.Context, electionID string, q Query) ([]models.Candidate, error) {
	query := `
		SELECT id, name, photo, bio, activity, field_of_activity, biography, work, education, facebook_url
		FROM candidate
		WHERE election_id = $1`
	args := []interface{}{electionID}

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query += ` AND (LOWER(name) LIKE $2 ESCAPE '\' OR LOWER(field_of_activity) LIKE $3 ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY " + orderBy(q.Sort)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Photo, &c.Bio, &c.Activity, &c.FieldOfActivity,
			&c.Biography, &c.Work, &c.Education, &c.FacebookURL); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// likeEscaper makes LIKE wildcards in a search term match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// orderBy maps a sort key to a fixed ORDER BY clause; unknown keys fall
// back to name-asc.
func orderBy(sort string) string {
	switch sort {
	case models.SortNameDesc:
		return "name DESC, id"
	case models.SortActivityDesc:
		return "activity DESC, name ASC, id"
	case models.SortActivityAsc:
		return "activity ASC, name ASC, id"
	default:
		return "name ASC, id"
	}
}

// Roster is an immutable in-memory set of eligible candidate ids.
// It satisfies ballot.Directory.
type Roster struct {
	ids map[int]struct{}
}

func NewRoster(candidates []models.Candidate) *Roster {
	r := &Roster{ids: make(map[int]struct{}, len(candidates))}
	for _, c := range candidates {
		r.ids[c.ID] = struct{}{}
	}
	return r
}

func (r *Roster) Contains(id int) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *Roster) Len() int {
	return len(r.ids)
}
