// Package txn implements the merge transaction guard.
//
// A Guard makes a merge or import attempt atomic from the caller's point of
// view. BeginAttempt captures a value-level Snapshot of the project's
// protected state (user variables, user lists, the sprite sequence with
// every sprite's content, and broadcast messages). Commit discards it;
// Rollback writes it back so the project compares equal to its pre-attempt
// self and no partially imported sprite stays reachable.
//
// Each snapshot also records a HighwayHash fingerprint of the protected
// state, which Rollback uses to verify the restore.
//
// State machine:
//
//	Idle → AttemptInProgress → {Committed, RolledBack} → (next BeginAttempt)
//
// Attempts do not nest. A Guard is not safe for concurrent use; callers
// serialize attempts per project.
package txn
