// Package reconcile moves a post's stored label associations to the label set
// the caller holds in memory.
package reconcile

import (
	"context"
	"fmt"
	"slices"
)

// Policy selects how the write set is computed.
type Policy string

const (
	// Diff deletes current∖desired and inserts desired∖current.
	Diff Policy = "diff"
	// Replace short-circuits when current and desired are equal as ordered
	// sequences; otherwise it deletes every association and inserts desired.
	Replace Policy = "replace"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Diff, Replace:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown association policy %q", s)
	}
}

// Plan is the set of association writes for one post.
type Plan struct {
	// DeleteAll removes every association of the post before Insert runs.
	DeleteAll bool
	Delete    []int64
	Insert    []int64
}

// Empty reports whether applying the plan issues no statements.
func (p Plan) Empty() bool {
	return !p.DeleteAll && len(p.Delete) == 0 && len(p.Insert) == 0
}

// Compute builds the plan that turns current into desired under policy.
// Desired ids are expected to be free of duplicates.
func Compute(policy Policy, current, desired []int64) Plan {
	if policy == Replace {
		if slices.Equal(current, desired) {
			return Plan{}
		}
		return Plan{DeleteAll: true, Insert: slices.Clone(desired)}
	}
	return Plan{
		Delete: difference(current, desired),
		Insert: difference(desired, current),
	}
}

// difference returns the ids of a missing from b, in a's order.
func difference(a, b []int64) []int64 {
	in := make(map[int64]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := in[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Store is the association table as seen by the reconciler. All calls of one
// Sync must go through the same transaction.
type Store interface {
	LabelIDs(ctx context.Context, postID int64) ([]int64, error)
	DeleteByPost(ctx context.Context, postID int64) error
	DeleteLabels(ctx context.Context, postID int64, labelIDs []int64) error
	InsertBatch(ctx context.Context, postID int64, labelIDs []int64) error
}

type Reconciler struct {
	policy Policy
}

func New(policy Policy) *Reconciler {
	return &Reconciler{policy: policy}
}

func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Sync reads the post's current associations, computes the plan and applies
// it. It returns the applied plan.
func (r *Reconciler) Sync(ctx context.Context, store Store, postID int64, desired []int64) (Plan, error) {
	current, err := store.LabelIDs(ctx, postID)
	if err != nil {
		return Plan{}, err
	}

	plan := Compute(r.policy, current, desired)
	if err := Apply(ctx, store, postID, plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Apply issues the plan's statements: deletes first, then one batch insert.
func Apply(ctx context.Context, store Store, postID int64, plan Plan) error {
	if plan.DeleteAll {
		if err := store.DeleteByPost(ctx, postID); err != nil {
			return err
		}
	} else if len(plan.Delete) > 0 {
		if err := store.DeleteLabels(ctx, postID, plan.Delete); err != nil {
			return err
		}
	}

	if len(plan.Insert) > 0 {
		if err := store.InsertBatch(ctx, postID, plan.Insert); err != nil {
			return err
		}
	}
	return nil
}
