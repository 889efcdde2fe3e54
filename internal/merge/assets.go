package merge

import (
	"fmt"

	"github.com/mmr-tortoise/project-merge/internal/model"
	"github.com/mmr-tortoise/project-merge/internal/naming"
)

// CopyLook duplicates the look called name inside sprite under a unique
// name ("name (1)", "name (2)", ...) and returns the new look. The copy
// points at the same FileName; duplicating the image file is left to the
// asset layer.
func CopyLook(sprite *model.Sprite, name string) (model.Look, error) {
	look, ok := sprite.LookByName(name)
	if !ok {
		return model.Look{}, model.InvalidMergeRequest("sprite %q has no look %q", sprite.Name, name)
	}

	newName, err := naming.UniqueName(look.Name, sprite.LookNames())
	if err != nil {
		return model.Look{}, fmt.Errorf("failed to name copy of look %q: %w", name, err)
	}

	look.Name = newName
	sprite.Looks = append(sprite.Looks, look)
	return look, nil
}

// CopySound duplicates the sound called name inside sprite under a unique
// name and returns the new sound.
func CopySound(sprite *model.Sprite, name string) (model.Sound, error) {
	sound, ok := sprite.SoundByName(name)
	if !ok {
		return model.Sound{}, model.InvalidMergeRequest("sprite %q has no sound %q", sprite.Name, name)
	}

	newName, err := naming.UniqueName(sound.Name, sprite.SoundNames())
	if err != nil {
		return model.Sound{}, fmt.Errorf("failed to name copy of sound %q: %w", name, err)
	}

	sound.Name = newName
	sprite.Sounds = append(sprite.Sounds, sound)
	return sound, nil
}
