// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/council-ballot/models"
)

// ReceiptStore keeps the local copy of submitted ballots
type ReceiptStore struct {
	db *sql.DB
}

func NewReceiptStore(db *sql.DB) *ReceiptStore {
	return &ReceiptStore{db: db}
}

func (s *ReceiptStore) Save(ctx context.Context, r models.VoteReceipt) error {
	council, err := json.Marshal(r.CouncilIDs)
	if err != nil {
		return err
	}
	executive, err := json.Marshal(r.ExecutiveIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vote_receipt (id, election_id, voter_email, council_ids, executive_ids, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.ID, r.ElectionID, r.VoterEmail, string(council), string(executive), r.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

func (s *ReceiptStore) List(ctx context.Context, electionID, voterEmail string) ([]models.VoteReceipt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, election_id, voter_email, council_ids, executive_ids, submitted_at
		FROM vote_receipt
		WHERE election_id = $1 AND voter_email = $2
		ORDER BY submitted_at DESC
	`, electionID, voterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	receipts := []models.VoteReceipt{}
	for rows.Next() {
		var r models.VoteReceipt
		var council, executive string
		if err := rows.Scan(&r.ID, &r.ElectionID, &r.VoterEmail, &council, &executive, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		if err := json.Unmarshal([]byte(council), &r.CouncilIDs); err != nil {
			return nil, fmt.Errorf("failed to parse receipt %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(executive), &r.ExecutiveIDs); err != nil {
			return nil, fmt.Errorf("failed to parse receipt %s: %w", r.ID, err)
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}
