package txn

import (
	"fmt"
	"sync"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

// State is the lifecycle state of a Guard.
type State int

const (
	// StateIdle means no attempt has been started yet.
	StateIdle State = iota

	// StateAttemptInProgress means a snapshot is held and mutations are
	// provisional.
	StateAttemptInProgress

	// StateCommitted means the last attempt was committed.
	StateCommitted

	// StateRolledBack means the last attempt was rolled back.
	StateRolledBack
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttemptInProgress:
		return "attempt-in-progress"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Guard protects one project at a time against partially applied merges.
//
// Committed and RolledBack are terminal for an attempt; the Guard accepts a
// new BeginAttempt from Idle, Committed or RolledBack.
//
// A Guard is safe for concurrent use: when two goroutines begin an attempt
// on the same Guard, exactly one succeeds and the other gets
// InvalidMergeRequest. The mutations made inside an attempt are not
// serialized by the Guard.
type Guard struct {
	mu       sync.Mutex
	state    State
	project  *model.Project
	snapshot *Snapshot
}

// NewGuard creates an idle Guard.
func NewGuard() *Guard {
	return &Guard{state: StateIdle}
}

// State returns the current lifecycle state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// InProgress reports whether an attempt is currently open.
func (g *Guard) InProgress() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateAttemptInProgress
}

// Snapshot returns the snapshot of the open attempt, or nil.
func (g *Guard) Snapshot() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot
}

// BeginAttempt snapshots p and opens an attempt. It fails with
// InvalidMergeRequest when an attempt is already in progress or when p
// holds a nil sprite.
func (g *Guard) BeginAttempt(p *model.Project) error {
	if p == nil {
		return model.InvalidMergeRequest("cannot begin an attempt on a nil project")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateAttemptInProgress {
		return model.InvalidMergeRequest("an attempt on project %q is already in progress", g.project.Name)
	}

	snap, err := Capture(p)
	if err != nil {
		return fmt.Errorf("failed to snapshot project %q: %w", p.Name, err)
	}

	g.project = p
	g.snapshot = snap
	g.state = StateAttemptInProgress
	return nil
}

// Commit discards the snapshot and keeps every mutation made since
// BeginAttempt.
func (g *Guard) Commit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAttemptInProgress {
		return model.InvalidMergeRequest("commit without an attempt in progress (state %s)", g.state)
	}

	g.project = nil
	g.snapshot = nil
	g.state = StateCommitted
	return nil
}

// Rollback restores p to the snapshot taken by BeginAttempt and closes the
// attempt. p must be the project the attempt was started on.
//
// After restoring, the project's fingerprint is compared with the one
// recorded at capture; a mismatch is reported as InconsistentState. The
// attempt is closed either way.
func (g *Guard) Rollback(p *model.Project) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAttemptInProgress {
		return model.InvalidMergeRequest("rollback without an attempt in progress (state %s)", g.state)
	}
	if p != g.project {
		return model.InvalidMergeRequest("rollback on project %q but the attempt was started on %q", projectName(p), g.project.Name)
	}

	// Restore first and close the attempt, then check the result against
	// the fingerprint recorded at capture.
	snap := g.snapshot
	snap.Restore(p)

	g.project = nil
	g.snapshot = nil
	g.state = StateRolledBack

	fp, err := Fingerprint(p)
	if err != nil {
		return &model.MergeError{Kind: model.KindInconsistentState, Message: "failed to verify rollback", Err: err}
	}
	if fp != snap.Fingerprint {
		return model.InconsistentState("project %q does not match its snapshot after rollback", p.Name)
	}
	return nil
}

func projectName(p *model.Project) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name
}
