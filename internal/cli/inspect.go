// inspect.go implements the "project-merge inspect" command.
//
// The inspect command prints a summary of a project document: its sprites
// with their asset counts, the project-wide state counts, any validation
// problems, and the state fingerprint used to verify rollbacks.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/project-merge/internal/model"
	"github.com/mmr-tortoise/project-merge/internal/store"
	"github.com/mmr-tortoise/project-merge/internal/txn"
)

// NewInspectCommand creates the "inspect" cobra command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project>",
		Short: "Show a summary of a project document",
		Long: `Show the sprites, global state, and validation problems of a project.

Examples:
  project-merge inspect game.json
  project-merge inspect --json pets.yaml`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0])
		},
	}
}

// inspectReport is the JSON output structure of the inspect command.
type inspectReport struct {
	Name        string       `json:"name"`
	Sprites     []spriteJSON `json:"sprites"`
	Globals     globalsJSON  `json:"globals"`
	Problems    []string     `json:"problems"`
	Fingerprint string       `json:"fingerprint"`
}

// buildInspectReport collects the summary of p.
func buildInspectReport(p *model.Project) (inspectReport, error) {
	fp, err := txn.Fingerprint(p)
	if err != nil {
		return inspectReport{}, err
	}

	report := inspectReport{
		Name:        p.Name,
		Sprites:     make([]spriteJSON, 0, len(p.Sprites)),
		Globals:     newGlobalsJSON(p),
		Problems:    make([]string, 0),
		Fingerprint: fmt.Sprintf("%016x", fp),
	}
	for _, s := range p.Sprites {
		if s == nil {
			continue
		}
		report.Sprites = append(report.Sprites, newSpriteJSON(s))
	}
	for _, ve := range store.Validate(p) {
		report.Problems = append(report.Problems, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return report, nil
}

func runInspect(ctx context.Context, url string) error {
	p, err := store.Load(ctx, url)
	if err != nil {
		return err
	}

	report, err := buildInspectReport(p)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to inspect project", err)
	}

	if IsJSONOutput() {
		printJSON(report)
		return nil
	}
	printInspectText(report)
	return nil
}

// printInspectText outputs the report as a text table:
//
//	SPRITE               SCRIPTS  LOOKS  SOUNDS
//	Rocket               2        2      1
func printInspectText(r inspectReport) {
	fmt.Printf("Project %q\n", r.Name)
	fmt.Printf("  Globals:     %d variables, %d lists, %d broadcast messages\n",
		r.Globals.UserVariables, r.Globals.UserLists, r.Globals.BroadcastMessages)
	fmt.Printf("  Fingerprint: %s\n", r.Fingerprint)
	fmt.Println()

	if len(r.Sprites) == 0 {
		fmt.Println("No sprites.")
	} else {
		fmt.Printf("%-20s %-8s %-6s %s\n", "SPRITE", "SCRIPTS", "LOOKS", "SOUNDS")
		for _, s := range r.Sprites {
			fmt.Printf("%-20s %-8d %-6d %d\n", s.Name, s.Scripts, len(s.Looks), len(s.Sounds))
		}
	}

	if len(r.Problems) > 0 {
		fmt.Println()
		fmt.Printf("%d problems:\n", len(r.Problems))
		for _, pr := range r.Problems {
			fmt.Printf("  %s\n", pr)
		}
	}
}
