// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Candidate sort orders
const (
	SortNameAsc      = "name-asc"
	SortNameDesc     = "name-desc"
	SortActivityDesc = "activity-desc"
	SortActivityAsc  = "activity-asc"
)

// Export formats
const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// Upstream domain types

type Candidate struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Photo           string `json:"photo"`
	Bio             string `json:"bio"`
	Activity        int    `json:"activity"`
	FieldOfActivity string `json:"field_of_activity"`
	Biography       string `json:"biography,omitempty"`
	Work            string `json:"work,omitempty"`
	Education       string `json:"education,omitempty"`
	FacebookURL     string `json:"facebook_url,omitempty"`
}

type Election struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	CreatedBy           string   `json:"created_by,omitempty"`
	CreatedAt           string   `json:"created_at,omitempty"`
	IsOpen              bool     `json:"is_open"`
	StartTime           *string  `json:"start_time,omitempty"`
	EndTime             *string  `json:"end_time,omitempty"`
	EligibleVoterEmails []string `json:"eligible_voter_emails,omitempty"`
	AdminUserIDs        []string `json:"admin_user_ids,omitempty"`
}

type ElectionStatus struct {
	IsOpen    bool    `json:"is_open"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type User struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsAdmin         bool   `json:"isAdmin"`
	IsEligibleVoter bool   `json:"isEligibleVoter"`
	HasVoted        bool   `json:"hasVoted"`
}

type SessionInfo struct {
	Authenticated  bool   `json:"authenticated"`
	User           *User  `json:"user,omitempty"`
	DemoElectionID string `json:"demo_election_id,omitempty"`
}

// BallotPayload is the finalized ballot sent to the election API.
// ExecutiveIDs is always a subset of CouncilIDs.
type BallotPayload struct {
	CouncilIDs   []int `json:"selectedCandidates"`
	ExecutiveIDs []int `json:"executiveCandidates"`
}

type CandidateResult struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	CouncilVotes   int    `json:"councilVotes"`
	ExecutiveVotes int    `json:"executiveVotes"`
}

type Results struct {
	IsOpen     bool              `json:"isOpen"`
	Message    string            `json:"message,omitempty"`
	TotalVotes int               `json:"totalVotes"`
	Results    []CandidateResult `json:"results"`
}

// Request types

type CreateElectionRequest struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	EligibleVoterEmails []string `json:"eligible_voter_emails"`
}

type AddCandidateRequest struct {
	Name            string `json:"name"`
	Photo           string `json:"photo"`
	Bio             string `json:"bio"`
	Activity        int    `json:"activity"`
	FieldOfActivity string `json:"field_of_activity"`
	Biography       string `json:"biography,omitempty"`
}

type ScheduleElectionRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Response types

// MessageResponse is the generic {"message": ...} body the election API
// returns for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

type BallotView struct {
	ElectionID        string `json:"election_id"`
	CouncilIDs        []int  `json:"council_ids"`
	ExecutiveIDs      []int  `json:"executive_ids"`
	CouncilCount      int    `json:"council_count"`
	ExecutiveCount    int    `json:"executive_count"`
	CouncilCapacity   int    `json:"council_capacity"`
	ExecutiveCapacity int    `json:"executive_capacity"`
	Submittable       bool   `json:"submittable"`
	ElectionOpen      bool   `json:"election_open"`
	HasVoted          bool   `json:"has_voted"`
}

type CandidateView struct {
	Candidate
	Selected  bool `json:"selected"`
	Executive bool `json:"executive"`
}

type SubmitBallotResponse struct {
	ReceiptID string `json:"receipt_id"`
	Message   string `json:"message"`
}

type VoteReceipt struct {
	ID           string    `json:"id"`
	ElectionID   string    `json:"election_id"`
	VoterEmail   string    `json:"-"`
	CouncilIDs   []int     `json:"council_ids"`
	ExecutiveIDs []int     `json:"executive_ids"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type FormattedResult struct {
	Rank             int    `json:"rank"`
	ID               int    `json:"id"`
	Name             string `json:"name"`
	CouncilVotes     int    `json:"council_votes"`
	ExecutiveVotes   int    `json:"executive_votes"`
	CouncilDisplay   string `json:"council_display"`
	ExecutiveDisplay string `json:"executive_display"`
	CouncilPercent   string `json:"council_percent"`
}

type ResultsResponse struct {
	ElectionID   string            `json:"election_id"`
	IsOpen       bool              `json:"is_open"`
	Message      string            `json:"message,omitempty"`
	TotalVotes   int               `json:"total_votes"`
	TotalDisplay string            `json:"total_display"`
	Results      []FormattedResult `json:"results"`
	FetchedAt    string            `json:"fetched_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
