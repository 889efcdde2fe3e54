package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/project-merge/internal/dedup"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// spriteShape describes a test sprite compactly.
type spriteShape struct {
	name    string
	scripts int
	looks   []string
	sounds  []string
	vars    []string
	lists   []string
}

// buildSprite creates a sprite from a shape. Scripts are structurally
// identical on purpose: they must still never be deduplicated.
func buildSprite(shape spriteShape) *model.Sprite {
	s := model.NewSprite(shape.name)
	for i := 0; i < shape.scripts; i++ {
		s.Scripts = append(s.Scripts, &model.Script{
			Event:  model.EventWhenStarted,
			Bricks: []model.Brick{{Type: "wait", Args: []string{"1"}}},
		})
	}
	for _, l := range shape.looks {
		s.Looks = append(s.Looks, model.Look{Name: l, FileName: l + ".png"})
	}
	for _, snd := range shape.sounds {
		s.Sounds = append(s.Sounds, model.Sound{Name: snd, FileName: snd + ".mp3"})
	}
	for _, v := range shape.vars {
		s.UserVariables = append(s.UserVariables, model.UserVariable{Name: v, Scope: model.ScopeSprite})
	}
	for _, l := range shape.lists {
		s.UserLists = append(s.UserLists, model.UserList{Name: l, Scope: model.ScopeSprite})
	}
	return s
}

// buildProject creates a project with the given project-scoped state.
func buildProject(name string, vars, lists, messages []string, sprites ...*model.Sprite) *model.Project {
	p := model.NewProject(name)
	for _, v := range vars {
		p.UserVariables = append(p.UserVariables, model.UserVariable{Name: v, Scope: model.ScopeProject, Value: name})
	}
	for _, l := range lists {
		p.UserLists = append(p.UserLists, model.UserList{Name: l, Scope: model.ScopeProject, Items: []string{name}})
	}
	for _, m := range messages {
		p.Broadcasts.Add(m)
	}
	for _, s := range sprites {
		p.AddSprite(s)
	}
	return p
}

// projectState is a value copy of the protected collections of a project,
// used to assert that a rejected request changed nothing.
type projectState struct {
	UserVariables     []model.UserVariable
	UserLists         []model.UserList
	Sprites           []*model.Sprite
	SpriteContents    []*model.Sprite
	BroadcastMessages []string
}

func captureState(p *model.Project) projectState {
	st := projectState{
		UserVariables:     append([]model.UserVariable(nil), p.UserVariables...),
		BroadcastMessages: append([]string(nil), p.Broadcasts.Messages...),
		Sprites:           append([]*model.Sprite(nil), p.Sprites...),
	}
	for _, l := range p.UserLists {
		st.UserLists = append(st.UserLists, l.Clone())
	}
	for _, s := range p.Sprites {
		st.SpriteContents = append(st.SpriteContents, s.DeepCopy())
	}
	return st
}

// assertUnchanged checks a project against a state captured before a
// rejected request.
func assertUnchanged(t *testing.T, before projectState, p *model.Project) {
	t.Helper()
	assert.Equal(t, before, captureState(p), "project %q must be unchanged", p.Name)
}

// assertGlobalInvariants checks the dedup invariant and the superset
// property of target over each source.
func assertGlobalInvariants(t *testing.T, target *model.Project, sources ...*model.Project) {
	t.Helper()
	assert.False(t, dedup.HasDuplicates(target.UserVariables, model.UserVariable.Equal), "duplicate user variables")
	assert.False(t, dedup.HasDuplicates(target.UserLists, model.UserList.Equal), "duplicate user lists")
	assert.False(t, dedup.HasDuplicates(target.Broadcasts.Messages, model.EqualBroadcastMessages), "duplicate broadcast messages")

	for _, src := range sources {
		assert.True(t, dedup.ContainsAll(target.UserVariables, src.UserVariables, model.UserVariable.Equal),
			"target must contain all user variables of %q", src.Name)
		assert.True(t, dedup.ContainsAll(target.UserLists, src.UserLists, model.UserList.Equal),
			"target must contain all user lists of %q", src.Name)
		assert.True(t, dedup.ContainsAll(target.Broadcasts.Messages, src.Broadcasts.Messages, model.EqualBroadcastMessages),
			"target must contain all broadcast messages of %q", src.Name)
	}
}

func names(n int, prefix string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
