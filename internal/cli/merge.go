// merge.go implements the "project-merge merge" command.
//
// The merge command combines several sprites into one. The sprites can
// come from the project being edited or from other projects given with
// --source; the global state of every source project is merged as well.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/project-merge/internal/merge"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// mergeFlags holds the flag values for the merge command.
type mergeFlags struct {
	project string   // --project: project receiving the merged sprite
	sources []string // --source: other projects sprites may come from
	name    string   // --name: name of the merged sprite
	into    string   // --into: merge into this existing sprite instead
	out     string   // --out: output document (default: --project)
}

// NewMergeCommand creates the "merge" cobra command.
func NewMergeCommand() *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge <sprite>...",
		Short: "Merge sprites into one",
		Long: `Merge sprites into a single sprite.

The merged sprite holds every script of every listed sprite, and the union
of their looks, sounds, and local variables and lists. Sprites are looked up
by name in the project first, then in each --source project in order.

By default a new sprite is added to the project. With --into, the assets are
appended to an existing sprite of the project instead.

Examples:
  project-merge merge --project game.json --name Hero Cat Dog
  project-merge merge --project game.json --source pets.yaml --name Team Cat Dog
  project-merge merge --project game.json --into Cat Dog`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.project, "project", "", "Project document to merge into")
	cmd.Flags().StringArrayVar(&flags.sources, "source", nil, "Additional source project document (repeatable)")
	cmd.Flags().StringVar(&flags.name, "name", "", "Name of the merged sprite (default: first sprite's name)")
	cmd.Flags().StringVar(&flags.into, "into", "", "Existing sprite to merge into")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output document (default: the project document)")

	_ = cmd.MarkFlagRequired("project")
	cmd.MarkFlagsMutuallyExclusive("name", "into")

	return cmd
}

// runMerge loads the projects, resolves the sprite names, and runs either
// Merge or MergeInto.
func runMerge(ctx context.Context, names []string, flags *mergeFlags) error {
	target, err := loadProject(ctx, flags.project)
	if err != nil {
		return err
	}

	sources := make([]*model.Project, 0, len(flags.sources))
	for _, url := range flags.sources {
		src, err := loadProject(ctx, url)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	sprites, err := resolveSprites(names, target, sources)
	if err != nil {
		return err
	}

	engine := newEngine()
	var result *model.Sprite
	verb := "Merged"

	if flags.into != "" {
		dst, err := findSprite(target, flags.into)
		if err != nil {
			return err
		}
		if err := engine.MergeInto(target, dst, sprites, sources...); err != nil {
			return model.WrapMergeError(fmt.Sprintf("failed to merge into sprite %q", flags.into), err)
		}
		result = dst
		verb = "Updated"
	} else {
		result, err = engine.Merge(target, merge.MergeRequest{
			Name:    flags.name,
			Sprites: sprites,
			Sources: sources,
		})
		if err != nil {
			return model.WrapMergeError("failed to merge sprites", err)
		}
	}

	out := outputURL(flags.project, flags.out)
	if err := saveProject(ctx, out, target); err != nil {
		return err
	}

	printSpriteResult(verb, result, target, out)
	return nil
}
