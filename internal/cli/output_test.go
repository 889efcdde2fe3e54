// output_test.go contains unit tests for the pure formatting
// and lookup helpers used by the CLI commands.
package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

func TestFormatNameList(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"nil returns dash", nil, "-"},
		{"empty returns dash", []string{}, "-"},
		{"single", []string{"idle"}, "idle"},
		{"keeps order", []string{"run", "idle", "jump"}, "run,idle,jump"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNameList(tt.names))
		})
	}
}

func TestFormatSpriteSummary(t *testing.T) {
	s := model.NewSprite("Cat")
	s.Scripts = []*model.Script{{Event: model.EventWhenStarted}, {Event: model.EventWhenStarted}, {Event: "when_tapped"}}
	s.Looks = []model.Look{{Name: "idle"}, {Name: "run"}}

	assert.Equal(t, "Scripts: 3  Looks: idle,run  Sounds: -", FormatSpriteSummary(s))
}

func TestFormatGlobalsSummary(t *testing.T) {
	p := model.NewProject("game")
	p.UserVariables = []model.UserVariable{{Name: "a", Scope: model.ScopeProject}}
	p.Broadcasts.Add("go")
	p.Broadcasts.Add("stop")

	assert.Equal(t, "1 variables, 0 lists, 2 broadcast messages", FormatGlobalsSummary(p))
}

func TestNewSpriteJSON_EmptyAssets(t *testing.T) {
	got := newSpriteJSON(model.NewSprite("Empty"))

	assert.NotNil(t, got.Looks, "empty looks must render as []")
	assert.NotNil(t, got.Sounds, "empty sounds must render as []")
	assert.Equal(t, 0, got.Scripts)
}

func TestOutputURL(t *testing.T) {
	assert.Equal(t, "in.json", outputURL("in.json", ""))
	assert.Equal(t, "out.yaml", outputURL("in.json", "out.yaml"))
}

func TestFindSprite(t *testing.T) {
	p := model.NewProject("game")
	cat := model.NewSprite("Cat")
	p.AddSprite(cat)

	got, err := findSprite(p, "Cat")
	require.NoError(t, err)
	assert.Same(t, cat, got)

	_, err = findSprite(p, "Dog")
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidMergeRequest, cliErr.Code)
}

// TestResolveSprites verifies lookup order: target first, then sources in
// the order given.
func TestResolveSprites(t *testing.T) {
	target := model.NewProject("target")
	targetCat := model.NewSprite("Cat")
	target.AddSprite(targetCat)

	src1 := model.NewProject("src1")
	src1Cat := model.NewSprite("Cat")
	src1Dog := model.NewSprite("Dog")
	src1.AddSprite(src1Cat)
	src1.AddSprite(src1Dog)

	src2 := model.NewProject("src2")
	src2Dog := model.NewSprite("Dog")
	src2Fox := model.NewSprite("Fox")
	src2.AddSprite(src2Dog)
	src2.AddSprite(src2Fox)

	got, err := resolveSprites([]string{"Cat", "Dog", "Fox"}, target, []*model.Project{src1, src2})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Same(t, targetCat, got[0])
	assert.Same(t, src1Dog, got[1])
	assert.Same(t, src2Fox, got[2])

	_, err = resolveSprites([]string{"Cat", "Owl"}, target, []*model.Project{src1, src2})
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidMergeRequest, cliErr.Code)
	assert.Contains(t, cliErr.Message, `"Owl"`)
}

func TestBuildInspectReport(t *testing.T) {
	p := model.NewProject("game")
	cat := model.NewSprite("Cat")
	cat.Looks = []model.Look{{Name: "a"}, {Name: "a"}}
	p.AddSprite(cat)
	p.Broadcasts.Add("go")

	report, err := buildInspectReport(p)
	require.NoError(t, err)

	assert.Equal(t, "game", report.Name)
	require.Len(t, report.Sprites, 1)
	assert.Equal(t, []string{"a", "a"}, report.Sprites[0].Looks)
	assert.Equal(t, 1, report.Globals.BroadcastMessages)
	assert.Len(t, report.Fingerprint, 16)
	require.Len(t, report.Problems, 1)
	assert.Contains(t, report.Problems[0], "sprites[0].looks[1]")

	again, err := buildInspectReport(p)
	require.NoError(t, err)
	assert.Equal(t, report.Fingerprint, again.Fingerprint)
}
