package merge

import (
	"github.com/mmr-tortoise/project-merge/internal/dedup"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// CombineSprites builds a new sprite holding the union of the assets of
// sources. It fails with InvalidMergeRequest when sources is empty or
// contains a nil sprite.
//
// The destination sprite gets a fresh identity and the first source's
// name. Its contents follow these rules, applied in source-list order:
//
//   - scripts are concatenated; structurally identical scripts are never
//     treated as duplicates, so the count is the sum of all source counts
//   - looks and sounds are unioned by name, first occurrence wins
//   - sprite-local variables and lists are unioned by name + scope
//
// Sources are read-only; everything in the result is a deep copy. Project
// scoped state is not touched here; callers merge it separately with
// MergeGlobalState.
func CombineSprites(sources []*model.Sprite) (*model.Sprite, error) {
	if len(sources) == 0 {
		return nil, model.InvalidMergeRequest("at least one source sprite is required")
	}
	if err := checkNotNil(sources); err != nil {
		return nil, err
	}

	dst := model.NewSprite(sources[0].Name)
	AppendSpriteAssets(dst, sources...)
	return dst, nil
}

// AppendSpriteAssets appends the assets of sources to an existing sprite
// using the same union rules as CombineSprites. Assets dst already has
// (by name for looks/sounds, by name + scope for variables/lists) are kept
// as they are.
func AppendSpriteAssets(dst *model.Sprite, sources ...*model.Sprite) {
	for _, src := range sources {
		// Scripts are never deduplicated
		for _, sc := range src.Scripts {
			dst.Scripts = append(dst.Scripts, sc.Clone())
		}

		dst.Looks = dedup.AppendMissing(dst.Looks, src.Looks, model.Look.SameName)
		dst.Sounds = dedup.AppendMissing(dst.Sounds, src.Sounds, model.Sound.SameName)
		dst.UserVariables = dedup.AppendMissing(dst.UserVariables, src.UserVariables, model.UserVariable.Equal)

		// Lists are cloned so their items stay independent of the source
		for _, l := range src.UserLists {
			if !dedup.Contains(dst.UserLists, l, model.UserList.Equal) {
				dst.UserLists = append(dst.UserLists, l.Clone())
			}
		}
	}
}

func checkNotNil(sprites []*model.Sprite) error {
	for i, s := range sprites {
		if s == nil {
			return model.InvalidMergeRequest("source sprite at position %d is nil", i)
		}
	}
	return nil
}
