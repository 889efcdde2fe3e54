package merge

import (
	"fmt"

	"github.com/mmr-tortoise/project-merge/internal/model"
	"github.com/mmr-tortoise/project-merge/internal/naming"
)

// ImportOptions controls how ImportSpriteWithOptions places the imported
// sprite in the target project.
type ImportOptions struct {
	// PlaceVisually appends one stage-placement script to the imported
	// sprite, as the editor does when the user drops the sprite on the stage.
	PlaceVisually bool

	// Position is the stage position used by the placement script.
	// Ignored unless PlaceVisually is set.
	Position model.Point

	// KeepName keeps the sprite's name even when the target already has a
	// sprite with that name. By default the imported sprite is renamed to
	// "name (1)", "name (2)", ... on collision.
	KeepName bool
}

// ImportSprite imports sprite from source into target. It is the short form
// of ImportSpriteWithOptions with only the placement flag set.
func ImportSprite(target, source *model.Project, sprite *model.Sprite, placeVisually bool) (*model.Sprite, error) {
	return ImportSpriteWithOptions(target, source, sprite, ImportOptions{PlaceVisually: placeVisually})
}

// ImportSpriteWithOptions copies one sprite from source into target.
//
// Steps:
//  1. Validate that sprite belongs to source's sprite sequence
//  2. Deep-copy the sprite under a new identity
//  3. Make the copy's name unique within target, unless KeepName is set
//  4. Append a placement script if requested
//  5. Append the copy to target's sprite sequence
//  6. Merge source's project-scoped state into target
//
// The copy replicates the original's scripts, looks, sounds, and sprite
// local variables/lists exactly; placement only ever adds one script.
// All validation happens before the first mutation, so a rejected call
// leaves target untouched. For rollback of later failures use Engine.
func ImportSpriteWithOptions(target, source *model.Project, sprite *model.Sprite, opts ImportOptions) (*model.Sprite, error) {
	// Step 1: Validate before the first mutation
	if target == nil || source == nil {
		return nil, model.InvalidMergeRequest("import requires both a target and a source project")
	}
	if sprite == nil {
		return nil, model.InvalidMergeRequest("import requires a sprite")
	}
	if !source.ContainsSprite(sprite) {
		return nil, model.InvalidMergeRequest("sprite %q does not belong to source project %q", sprite.Name, source.Name)
	}

	// Step 2: Deep-copy the sprite under a new identity
	imported := sprite.Clone()

	// Step 3: Make the name unique within target
	if !opts.KeepName {
		name, err := naming.UniqueName(imported.Name, target.SpriteNames())
		if err != nil {
			return nil, fmt.Errorf("failed to name imported sprite: %w", err)
		}
		imported.Name = name
	}

	// Step 4: Append the placement script
	if opts.PlaceVisually {
		imported.Scripts = append(imported.Scripts, model.NewPlacementScript(opts.Position))
	}

	// Step 5-6: Attach the copy and merge project-scoped state
	target.AddSprite(imported)
	MergeGlobalState(target, source)

	return imported, nil
}
