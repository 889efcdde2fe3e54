package txn

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/minio/highwayhash"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

// fingerprintKey is the fixed 32-byte HighwayHash key. Fingerprints are
// only compared within one process, so the key does not need to be secret.
var fingerprintKey = []byte("project-merge/txn-fingerprint-k1")

// Snapshot is a value-level copy of the state a merge attempt may mutate.
type Snapshot struct {
	// UserVariables, UserLists and BroadcastMessages are deep copies of the
	// project-scoped collections.
	UserVariables     []model.UserVariable
	UserLists         []model.UserList
	BroadcastMessages []string

	// Sprites is the sprite sequence (clones included) by identity.
	Sprites []*model.Sprite

	// SpriteContents holds a deep copy of each sprite in Sprites, at the
	// same index, so sprites mutated in place can be restored too.
	SpriteContents []*model.Sprite

	// Fingerprint is the HighwayHash-64 of the protected state at capture.
	Fingerprint uint64
}

// Capture takes a snapshot of p. A nil entry in the sprite sequence is
// rejected with InvalidMergeRequest.
func Capture(p *model.Project) (*Snapshot, error) {
	for i, sp := range p.Sprites {
		if sp == nil {
			return nil, model.InvalidMergeRequest("project %q has a nil sprite at position %d", p.Name, i)
		}
	}

	s := &Snapshot{
		UserVariables:     slices.Clone(p.UserVariables),
		UserLists:         cloneLists(p.UserLists),
		BroadcastMessages: slices.Clone(p.Broadcasts.Messages),
		Sprites:           slices.Clone(p.Sprites),
	}

	s.SpriteContents = make([]*model.Sprite, len(p.Sprites))
	for i, sp := range p.Sprites {
		s.SpriteContents[i] = sp.DeepCopy()
	}

	fp, err := Fingerprint(p)
	if err != nil {
		return nil, err
	}
	s.Fingerprint = fp
	return s, nil
}

// Restore writes the snapshot back into p. Sprite identities are restored
// (the same pointers, in the same order) and each sprite's content is
// overwritten with its captured copy. Nil and empty collections stay
// distinct, so the restored project fingerprints like the captured one.
// The snapshot stays usable: restoring twice yields the same project.
func (s *Snapshot) Restore(p *model.Project) {
	// Project-scoped collections are replaced wholesale.
	p.UserVariables = slices.Clone(s.UserVariables)
	p.UserLists = cloneLists(s.UserLists)
	p.Broadcasts.Messages = slices.Clone(s.BroadcastMessages)

	// Drop sprites appended during the attempt, then rewrite the content of
	// every captured sprite through its original pointer.
	p.Sprites = slices.Clone(s.Sprites)
	for i, sp := range s.Sprites {
		*sp = *s.SpriteContents[i].DeepCopy()
	}
}

// fingerprintState is the canonical form hashed by Fingerprint.
type fingerprintState struct {
	UserVariables     []model.UserVariable `json:"userVariables"`
	UserLists         []model.UserList     `json:"userLists"`
	Sprites           []*model.Sprite      `json:"sprites"`
	BroadcastMessages []string             `json:"broadcastMessages"`
}

// Fingerprint hashes the protected state of p (the four collections a
// snapshot captures, with sprite contents) with HighwayHash-64. Equal
// states hash equally.
func Fingerprint(p *model.Project) (uint64, error) {
	data, err := json.Marshal(fingerprintState{
		UserVariables:     p.UserVariables,
		UserLists:         p.UserLists,
		Sprites:           p.Sprites,
		BroadcastMessages: p.Broadcasts.Messages,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode project state: %w", err)
	}

	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize fingerprint hash: %w", err)
	}
	_, _ = hash.Write(data)
	return hash.Sum64(), nil
}

func cloneLists(lists []model.UserList) []model.UserList {
	if lists == nil {
		return nil
	}
	out := make([]model.UserList, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}
