package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

func newImportFixture() (target, source *model.Project, sprite *model.Sprite) {
	sprite = buildSprite(spriteShape{
		name:    "Dog",
		scripts: 2,
		looks:   []string{"sit", "run"},
		sounds:  []string{"bark"},
		vars:    []string{"speed"},
		lists:   []string{"tricks"},
	})
	source = buildProject("source", []string{"score", "lives"}, []string{"highscores"}, []string{"start", "win"}, sprite)
	target = buildProject("target", []string{"score"}, nil, []string{"start"}, buildSprite(spriteShape{name: "Cat", scripts: 1}))
	return target, source, sprite
}

// TestImportSprite_ScriptCountLaw verifies that the imported sprite has the
// original's scripts, plus exactly one when placed visually.
func TestImportSprite_ScriptCountLaw(t *testing.T) {
	tests := []struct {
		name  string
		place bool
		want  int
	}{
		{"without placement", false, 2},
		{"with placement", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, source, sprite := newImportFixture()

			imported, err := ImportSprite(target, source, sprite, tt.place)
			require.NoError(t, err)
			assert.Equal(t, tt.want, imported.ScriptCount())
			assert.Equal(t, 2, sprite.ScriptCount(), "original must be unchanged")
		})
	}
}

// TestImportSprite_PlacementScript verifies the layout of the appended script.
func TestImportSprite_PlacementScript(t *testing.T) {
	target, source, sprite := newImportFixture()

	imported, err := ImportSpriteWithOptions(target, source, sprite, ImportOptions{
		PlaceVisually: true,
		Position:      model.Point{X: 10, Y: -20},
	})
	require.NoError(t, err)

	last := imported.Scripts[len(imported.Scripts)-1]
	assert.Equal(t, model.EventWhenStarted, last.Event)
	require.Len(t, last.Bricks, 1)
	assert.Equal(t, model.BrickPlaceAt, last.Bricks[0].Type)
	assert.Equal(t, []string{"10", "-20"}, last.Bricks[0].Args)
}

// TestImportSprite_CopiesAssets verifies looks, sounds, and sprite-local
// containers are replicated exactly, regardless of placement.
func TestImportSprite_CopiesAssets(t *testing.T) {
	for _, place := range []bool{false, true} {
		target, source, sprite := newImportFixture()

		imported, err := ImportSprite(target, source, sprite, place)
		require.NoError(t, err)

		assert.Equal(t, sprite.Looks, imported.Looks)
		assert.Equal(t, sprite.Sounds, imported.Sounds)
		assert.Equal(t, sprite.UserVariables, imported.UserVariables)
		assert.Equal(t, sprite.UserLists, imported.UserLists)
	}
}

// TestImportSprite_AppendsAndMergesGlobals verifies the target gains the
// sprite and a superset of the source's project-scoped state.
func TestImportSprite_AppendsAndMergesGlobals(t *testing.T) {
	target, source, sprite := newImportFixture()

	imported, err := ImportSprite(target, source, sprite, false)
	require.NoError(t, err)

	require.Len(t, target.Sprites, 2)
	assert.Same(t, imported, target.Sprites[1])
	assert.True(t, target.ContainsSprite(imported))
	assert.False(t, target.ContainsSprite(sprite), "target holds a copy, not the source sprite")
	assert.NotEqual(t, sprite.ID, imported.ID)
	assert.Equal(t, "Dog", imported.Name)

	assert.Len(t, target.UserVariables, 2)
	assert.Len(t, target.UserLists, 1)
	assert.Equal(t, []string{"start", "win"}, target.Broadcasts.Messages)
	assertGlobalInvariants(t, target, source)
}

// TestImportSprite_NotInSource verifies that a sprite the source does not
// own is rejected and the target is unchanged.
func TestImportSprite_NotInSource(t *testing.T) {
	target, source, _ := newImportFixture()
	stranger := buildSprite(spriteShape{name: "Ghost", scripts: 1})
	lookalike := source.Sprites[0].DeepCopy()
	before := captureState(target)

	for _, s := range []*model.Sprite{stranger, lookalike, nil} {
		_, err := ImportSprite(target, source, s, true)
		assert.True(t, model.IsInvalidMergeRequest(err))
	}
	assertUnchanged(t, before, target)
}

// TestImportSprite_NilProjects verifies nil projects are rejected.
func TestImportSprite_NilProjects(t *testing.T) {
	target, source, sprite := newImportFixture()

	_, err := ImportSprite(nil, source, sprite, false)
	assert.True(t, model.IsInvalidMergeRequest(err))

	_, err = ImportSprite(target, nil, sprite, false)
	assert.True(t, model.IsInvalidMergeRequest(err))
}

// TestImportSprite_NameCollision verifies the rename-on-collision rule and
// the KeepName option.
func TestImportSprite_NameCollision(t *testing.T) {
	t.Run("renamed", func(t *testing.T) {
		target, source, sprite := newImportFixture()
		sprite.Name = "Cat"

		first, err := ImportSprite(target, source, sprite, false)
		require.NoError(t, err)
		assert.Equal(t, "Cat (1)", first.Name)

		second, err := ImportSprite(target, source, sprite, false)
		require.NoError(t, err)
		assert.Equal(t, "Cat (2)", second.Name)
		assert.Equal(t, "Cat", sprite.Name)
	})

	t.Run("kept", func(t *testing.T) {
		target, source, sprite := newImportFixture()
		sprite.Name = "Cat"

		imported, err := ImportSpriteWithOptions(target, source, sprite, ImportOptions{KeepName: true})
		require.NoError(t, err)
		assert.Equal(t, "Cat", imported.Name)
		assert.Equal(t, []string{"Cat", "Cat"}, target.SpriteNames())
	})
}

// TestImportSprite_Independence verifies that the copy and the original
// can be mutated independently.
func TestImportSprite_Independence(t *testing.T) {
	target, source, sprite := newImportFixture()

	imported, err := ImportSprite(target, source, sprite, false)
	require.NoError(t, err)

	imported.Scripts[0].Bricks[0].Args[0] = "5"
	imported.Looks = append(imported.Looks, model.Look{Name: "extra"})
	sprite.Sounds[0].Name = "woof"

	assert.Equal(t, "1", sprite.Scripts[0].Bricks[0].Args[0])
	assert.Len(t, sprite.Looks, 2)
	assert.Equal(t, "bark", imported.Sounds[0].Name)
}

// TestImportSprite_SameProject verifies importing a sprite from the target
// into itself produces a renamed copy and leaves globals unchanged.
func TestImportSprite_SameProject(t *testing.T) {
	target, _, _ := newImportFixture()
	cat := target.Sprites[0]
	globals := append([]model.UserVariable(nil), target.UserVariables...)

	imported, err := ImportSprite(target, target, cat, false)
	require.NoError(t, err)

	assert.Equal(t, "Cat (1)", imported.Name)
	assert.Len(t, target.Sprites, 2)
	assert.Equal(t, globals, target.UserVariables)
	assertGlobalInvariants(t, target)
}

// TestImportSprite_PlacedNoOverlap imports a placed sprite into a target
// that shares nothing with the source.
func TestImportSprite_PlacedNoOverlap(t *testing.T) {
	s := buildSprite(spriteShape{name: "Bird", scripts: 4, looks: []string{"fly"}})
	source := buildProject("source", []string{"wind"}, []string{"nests"}, []string{"migrate"}, s)
	target := buildProject("target", []string{"score"}, nil, []string{"start"}, buildSprite(spriteShape{name: "Cat"}))
	spritesBefore := len(target.Sprites)

	imported, err := ImportSprite(target, source, s, true)
	require.NoError(t, err)

	assert.Len(t, target.Sprites, spritesBefore+1)
	assert.Equal(t, s.ScriptCount()+1, imported.ScriptCount())
	assert.Equal(t, []string{"fly"}, imported.LookNames(), "placement does not touch looks")
	assertGlobalInvariants(t, target, source)
}
