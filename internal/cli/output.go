package cli

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

// spriteJSON is the JSON output structure for a sprite.
type spriteJSON struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Scripts int      `json:"scripts"`
	Looks   []string `json:"looks"`
	Sounds  []string `json:"sounds"`
}

// newSpriteJSON converts a sprite into its JSON output form. Empty asset
// lists are rendered as [] rather than null.
func newSpriteJSON(s *model.Sprite) spriteJSON {
	return spriteJSON{
		ID:      s.ID,
		Name:    s.Name,
		Scripts: s.ScriptCount(),
		Looks:   s.LookNames(),
		Sounds:  s.SoundNames(),
	}
}

// globalsJSON is the JSON output structure for project-wide state counts.
type globalsJSON struct {
	UserVariables     int `json:"userVariables"`
	UserLists         int `json:"userLists"`
	BroadcastMessages int `json:"broadcastMessages"`
}

func newGlobalsJSON(p *model.Project) globalsJSON {
	return globalsJSON{
		UserVariables:     len(p.UserVariables),
		UserLists:         len(p.UserLists),
		BroadcastMessages: len(p.Broadcasts.Messages),
	}
}

// printSpriteResult outputs the result of a command that produced or
// changed a sprite, in text or JSON format.
func printSpriteResult(verb string, s *model.Sprite, p *model.Project, out string) {
	if IsJSONOutput() {
		printJSON(struct {
			Sprite  spriteJSON  `json:"sprite"`
			Project string      `json:"project"`
			Output  string      `json:"output"`
			Globals globalsJSON `json:"globals"`
		}{
			Sprite:  newSpriteJSON(s),
			Project: p.Name,
			Output:  out,
			Globals: newGlobalsJSON(p),
		})
		return
	}

	fmt.Printf("%s sprite %q into project %q\n", verb, s.Name, p.Name)
	fmt.Printf("  %s\n", FormatSpriteSummary(s))
	fmt.Printf("  Globals: %s\n", FormatGlobalsSummary(p))
	fmt.Printf("  Saved:   %s\n", out)
}

// FormatSpriteSummary renders the asset counts of a sprite on one line.
//
// Example:
//
//	"Scripts: 3  Looks: idle,run  Sounds: -"
func FormatSpriteSummary(s *model.Sprite) string {
	return fmt.Sprintf("Scripts: %d  Looks: %s  Sounds: %s",
		s.ScriptCount(), FormatNameList(s.LookNames()), FormatNameList(s.SoundNames()))
}

// FormatGlobalsSummary renders the project-wide state counts on one line.
func FormatGlobalsSummary(p *model.Project) string {
	return fmt.Sprintf("%d variables, %d lists, %d broadcast messages",
		len(p.UserVariables), len(p.UserLists), len(p.Broadcasts.Messages))
}

// FormatNameList joins names with commas. Returns "-" for an empty list.
func FormatNameList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
