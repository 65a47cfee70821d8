// Package models defines the blogging domain persisted by the repositories:
// writers, posts and the labels attached to posts.
package models

import "fmt"

// Status is the lifecycle state stored in every aggregate's status column.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// ParseStatus converts a stored status value. An empty value maps to ACTIVE,
// which is the column default.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusDeleted:
		return StatusDeleted, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// OrActive returns s, or ACTIVE when s is unset.
func (s Status) OrActive() Status {
	if s == "" {
		return StatusActive
	}
	return s
}

// DeletePolicy selects how an aggregate is retired by DeleteByID.
type DeletePolicy string

const (
	// DeleteSoft flips the status column to DELETED.
	DeleteSoft DeletePolicy = "soft"
	// DeleteHard physically removes the row and its association rows.
	DeleteHard DeletePolicy = "hard"
)

func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(s) {
	case DeleteSoft, DeleteHard:
		return DeletePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown delete policy %q", s)
	}
}
