package merge

import (
	"github.com/mmr-tortoise/project-merge/internal/dedup"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// MergeGlobalState appends to target every project-scoped user variable,
// user list, and broadcast message of source that target does not already
// have, preserving source order.
//
// Existing entries of target are never removed or overwritten, even when
// the source holds a different value for an equal variable. The operation
// is total and idempotent: calling it again with the same source changes
// nothing. If both projects were duplicate-free before the call, target is
// duplicate-free afterwards and a superset of source.
func MergeGlobalState(target, source *model.Project) {
	target.UserVariables = dedup.AppendMissing(target.UserVariables, source.UserVariables, model.UserVariable.Equal)

	// Lists are cloned on the way in so the target never shares item storage
	// with the source project.
	for _, l := range source.UserLists {
		if !dedup.Contains(target.UserLists, l, model.UserList.Equal) {
			target.UserLists = append(target.UserLists, l.Clone())
		}
	}

	for _, msg := range source.Broadcasts.Messages {
		target.Broadcasts.Add(msg)
	}
}

// VerifyGlobalState is the post-condition check run after every mutating
// merge step. It returns an InconsistentState error naming the first
// project-scoped collection that holds a duplicate.
func VerifyGlobalState(p *model.Project) error {
	if i, j := dedup.FirstDuplicate(p.UserVariables, model.UserVariable.Equal); i >= 0 {
		return model.InconsistentState("project %q: user variable %q appears at positions %d and %d",
			p.Name, p.UserVariables[i].Name, i, j)
	}
	if i, j := dedup.FirstDuplicate(p.UserLists, model.UserList.Equal); i >= 0 {
		return model.InconsistentState("project %q: user list %q appears at positions %d and %d",
			p.Name, p.UserLists[i].Name, i, j)
	}
	if i, j := dedup.FirstDuplicate(p.Broadcasts.Messages, model.EqualBroadcastMessages); i >= 0 {
		return model.InconsistentState("project %q: broadcast message %q appears at positions %d and %d",
			p.Name, p.Broadcasts.Messages[i], i, j)
	}
	return nil
}

// VerifySprite checks the per-sprite uniqueness rules: looks and sounds are
// unique by name, sprite-local variables and lists by name + scope.
func VerifySprite(s *model.Sprite) error {
	if i, _ := dedup.FirstDuplicate(s.Looks, model.Look.SameName); i >= 0 {
		return model.InconsistentState("sprite %q: duplicate look %q", s.Name, s.Looks[i].Name)
	}
	if i, _ := dedup.FirstDuplicate(s.Sounds, model.Sound.SameName); i >= 0 {
		return model.InconsistentState("sprite %q: duplicate sound %q", s.Name, s.Sounds[i].Name)
	}
	if i, _ := dedup.FirstDuplicate(s.UserVariables, model.UserVariable.Equal); i >= 0 {
		return model.InconsistentState("sprite %q: duplicate user variable %q", s.Name, s.UserVariables[i].Name)
	}
	if i, _ := dedup.FirstDuplicate(s.UserLists, model.UserList.Equal); i >= 0 {
		return model.InconsistentState("sprite %q: duplicate user list %q", s.Name, s.UserLists[i].Name)
	}
	return nil
}
