// Package token implements the supply token (C4): a unit of demand that
// moves one hop per scheduler round along its own private view of the
// auxiliary network.
package token

import (
	"robmcf/internal/matrix"
	"robmcf/internal/pathing"
	"robmcf/internal/rmerr"
)

// Token is one unit of supply travelling from Origin to Dest. Current is the
// mutable cursor a scenario's router advances one hop at a time. Mask,
// Distances and Successors are private to this token: Mask starts as the
// admissible arc set for (Origin, Dest) and is narrowed every time the token
// uses an arc, guaranteeing acyclic progress; Distances/Successors are
// recomputed lazily from Mask by Refresh.
type Token struct {
	Origin int
	Current int
	Dest    int

	Mask        *matrix.Matrix[bool]
	Distances   *matrix.Matrix[uint64]
	Successors  *matrix.Matrix[uint64]
}

// New creates a token at its origin, with mask cloned from the admissible
// arc set so later mutation never affects the shared A(s,t) the builder
// computed once.
func New(origin, dest int, mask *matrix.Matrix[bool], distances, successors *matrix.Matrix[uint64]) *Token {
	return &Token{
		Origin:     origin,
		Current:    origin,
		Dest:       dest,
		Mask:       mask.Clone(),
		Distances:  distances,
		Successors: successors,
	}
}

// Refresh recomputes this token's private distance and successor matrices
// against capacities masked by the token's own admissible arc set, so a
// token that has already used some arcs in the auxiliary network never
// reconsiders them.
func (t *Token) Refresh(capacities, costs *matrix.Matrix[uint64]) error {
	masked := capacities.ApplyMask(t.Mask, 0)
	dist, prev := pathing.FloydWarshall(masked, costs)
	succ, err := pathing.InvertPredecessors(prev)
	if err != nil {
		return rmerr.Wrap(err, rmerr.CodePathMatrixCorrupt, "failed to refresh token routing tables")
	}
	t.Distances = dist
	t.Successors = succ
	return nil
}

// Delivered reports whether the token has reached its destination.
func (t *Token) Delivered() bool { return t.Current == t.Dest }
