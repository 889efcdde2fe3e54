package cli

import (
	"context"
	"fmt"

	"github.com/mmr-tortoise/project-merge/internal/model"
	"github.com/mmr-tortoise/project-merge/internal/store"
)

// loadProject reads a project document and reports validation problems in
// the verbose log. Problems do not stop the command: the merge engine
// rejects any attempt that would leave them in place.
func loadProject(ctx context.Context, url string) (*model.Project, error) {
	p, err := store.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	VerboseLog("Loaded project %q from %s (%d sprites)", p.Name, url, len(p.Sprites))

	if errs := store.Validate(p); len(errs) > 0 {
		VerboseLog("Project %q has %d validation problems:\n%s", p.Name, len(errs), store.FormatValidationErrors(errs))
	}
	return p, nil
}

// saveProject writes p to url.
func saveProject(ctx context.Context, url string, p *model.Project) error {
	if err := store.Save(ctx, url, p); err != nil {
		return err
	}
	VerboseLog("Saved project %q to %s", p.Name, url)
	return nil
}

// findSprite returns the sprite called name in p.
func findSprite(p *model.Project, name string) (*model.Sprite, error) {
	s := p.SpriteByName(name)
	if s == nil {
		return nil, model.NewCLIError(model.ExitInvalidMergeRequest,
			fmt.Sprintf("sprite %q not found in project %q", name, p.Name))
	}
	return s, nil
}

// resolveSprites looks up each name in target first and then in each source
// project in order. The first match wins.
func resolveSprites(names []string, target *model.Project, sources []*model.Project) ([]*model.Sprite, error) {
	sprites := make([]*model.Sprite, 0, len(names))
	for _, name := range names {
		s := target.SpriteByName(name)
		for i := 0; s == nil && i < len(sources); i++ {
			s = sources[i].SpriteByName(name)
		}
		if s == nil {
			return nil, model.NewCLIError(model.ExitInvalidMergeRequest,
				fmt.Sprintf("sprite %q not found in project %q or any source project", name, target.Name))
		}
		sprites = append(sprites, s)
	}
	return sprites, nil
}

// outputURL returns out, or in when out is empty.
func outputURL(in, out string) string {
	if out == "" {
		return in
	}
	return out
}
