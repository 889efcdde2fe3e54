// copy.go implements the "project-merge copy-asset" command.
//
// The command duplicates one look or sound inside a sprite under a free
// name ("name (1)", "name (2)", ...).
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

// copyFlags holds the flag values for the copy-asset command.
type copyFlags struct {
	project string // --project: project document
	sprite  string // --sprite: sprite owning the asset
	look    string // --look: look to copy
	sound   string // --sound: sound to copy
	out     string // --out: output document (default: --project)
}

// NewCopyAssetCommand creates the "copy-asset" cobra command.
func NewCopyAssetCommand() *cobra.Command {
	flags := &copyFlags{}

	cmd := &cobra.Command{
		Use:   "copy-asset",
		Short: "Duplicate a look or sound inside a sprite",
		Long: `Duplicate a look or sound of a sprite under a new, unique name.

Examples:
  project-merge copy-asset --project game.json --sprite Cat --sound meow
  project-merge copy-asset --project game.json --sprite Cat --look idle`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopyAsset(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.project, "project", "", "Project document")
	cmd.Flags().StringVar(&flags.sprite, "sprite", "", "Sprite owning the asset")
	cmd.Flags().StringVar(&flags.look, "look", "", "Name of the look to copy")
	cmd.Flags().StringVar(&flags.sound, "sound", "", "Name of the sound to copy")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output document (default: the project document)")

	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("sprite")
	cmd.MarkFlagsMutuallyExclusive("look", "sound")
	cmd.MarkFlagsOneRequired("look", "sound")

	return cmd
}

func runCopyAsset(ctx context.Context, flags *copyFlags) error {
	p, err := loadProject(ctx, flags.project)
	if err != nil {
		return err
	}
	sprite, err := findSprite(p, flags.sprite)
	if err != nil {
		return err
	}

	engine := newEngine()
	var kind, from, to string

	if flags.look != "" {
		look, err := engine.CopyLook(p, sprite, flags.look)
		if err != nil {
			return model.WrapMergeError(fmt.Sprintf("failed to copy look %q", flags.look), err)
		}
		kind, from, to = "look", flags.look, look.Name
	} else {
		sound, err := engine.CopySound(p, sprite, flags.sound)
		if err != nil {
			return model.WrapMergeError(fmt.Sprintf("failed to copy sound %q", flags.sound), err)
		}
		kind, from, to = "sound", flags.sound, sound.Name
	}

	out := outputURL(flags.project, flags.out)
	if err := saveProject(ctx, out, p); err != nil {
		return err
	}

	if IsJSONOutput() {
		printJSON(struct {
			Sprite string `json:"sprite"`
			Kind   string `json:"kind"`
			From   string `json:"from"`
			To     string `json:"to"`
			Output string `json:"output"`
		}{sprite.Name, kind, from, to, out})
		return nil
	}
	fmt.Printf("Copied %s %q to %q in sprite %q\n", kind, from, to, sprite.Name)
	fmt.Printf("  Saved: %s\n", out)
	return nil
}
