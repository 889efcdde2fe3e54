package merge

import (
	"fmt"
	"sync"

	"github.com/mmr-tortoise/project-merge/internal/model"
	"github.com/mmr-tortoise/project-merge/internal/naming"
	"github.com/mmr-tortoise/project-merge/internal/txn"
)

// Logf receives progress messages from the Engine. The CLI wires it to its
// verbose logger; the default discards everything.
type Logf func(format string, args ...any)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the Engine's progress logger.
func WithLogger(logf Logf) Option {
	return func(e *Engine) {
		if logf != nil {
			e.logf = logf
		}
	}
}

// Engine runs merge and import requests as guarded attempts.
//
// Every entry point snapshots the target project, performs the work, runs
// the duplicate post-conditions, and then either commits or rolls back.
// Whatever the outcome, the target is left fully merged or exactly as it
// was. The Engine keeps one txn.Guard per target project, so a second
// attempt on a project whose attempt is still open is rejected with
// InvalidMergeRequest. This holds across goroutines too: concurrent calls
// on the same project race for its guard and all but one are rejected.
// Callers that want queued rather than rejected requests serialize them.
type Engine struct {
	mu     sync.Mutex
	guards map[*model.Project]*txn.Guard
	logf   Logf
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		guards: make(map[*model.Project]*txn.Guard),
		logf:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Guard returns the transaction guard for p, creating it on first use.
// Editors that drive attempts themselves use it to begin, commit, or roll
// back around their own mutations.
func (e *Engine) Guard(p *model.Project) *txn.Guard {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.guards[p]
	if !ok {
		g = txn.NewGuard()
		e.guards[p] = g
	}
	return g
}

// Forget drops the guard kept for p. A guard with an open attempt is kept.
func (e *Engine) Forget(p *model.Project) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if g, ok := e.guards[p]; ok && !g.InProgress() {
		delete(e.guards, p)
	}
}

// Import copies sprite from source into target as one guarded attempt.
// See ImportSpriteWithOptions for the import steps.
func (e *Engine) Import(target, source *model.Project, sprite *model.Sprite, opts ImportOptions) (*model.Sprite, error) {
	var imported *model.Sprite

	err := e.attempt(target, "import", func() error {
		s, err := ImportSpriteWithOptions(target, source, sprite, opts)
		if err != nil {
			return err
		}
		if err := VerifySprite(s); err != nil {
			return err
		}
		e.logf("import: copied sprite %q as %q (%d scripts, %d looks, %d sounds)",
			sprite.Name, s.Name, s.ScriptCount(), len(s.Looks), len(s.Sounds))
		imported = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imported, nil
}

// MergeRequest describes a sprite merge into a target project.
type MergeRequest struct {
	// Name is the name of the merged sprite. Empty means the name of the
	// first sprite. The name is made unique within the target.
	Name string

	// Sprites are the sprites to combine, in order. Each must belong to the
	// target project or to one of Sources.
	Sprites []*model.Sprite

	// Sources are the other projects the sprites come from. Their global
	// state is merged into the target.
	Sources []*model.Project
}

// Merge combines req.Sprites into a new sprite appended to target, and
// merges the global state of every project in req.Sources into target.
func (e *Engine) Merge(target *model.Project, req MergeRequest) (*model.Sprite, error) {
	var merged *model.Sprite

	err := e.attempt(target, "merge", func() error {
		if err := validateMergeSprites(target, req.Sprites, req.Sources); err != nil {
			return err
		}

		combined, err := CombineSprites(req.Sprites)
		if err != nil {
			return err
		}

		name := req.Name
		if name == "" {
			name = combined.Name
		}
		if err := model.ValidateSpriteName(name); err != nil {
			return model.InvalidMergeRequest("merged sprite name: %v", err)
		}
		unique, err := naming.UniqueName(name, target.SpriteNames())
		if err != nil {
			return fmt.Errorf("failed to name merged sprite: %w", err)
		}
		combined.Name = unique

		if err := VerifySprite(combined); err != nil {
			return err
		}

		target.AddSprite(combined)
		e.mergeSources(target, req.Sources)

		e.logf("merge: combined %d sprites into %q (%d scripts, %d looks, %d sounds)",
			len(req.Sprites), combined.Name, combined.ScriptCount(), len(combined.Looks), len(combined.Sounds))
		merged = combined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeInto appends the assets of sprites to dst, an existing sprite of
// target, and merges the global state of sources into target.
func (e *Engine) MergeInto(target *model.Project, dst *model.Sprite, sprites []*model.Sprite, sources ...*model.Project) error {
	return e.attempt(target, "merge-into", func() error {
		if !target.ContainsSprite(dst) {
			return model.InvalidMergeRequest("destination sprite does not belong to project %q", target.Name)
		}
		if err := validateMergeSprites(target, sprites, sources); err != nil {
			return err
		}
		for _, s := range sprites {
			if s == dst {
				return model.InvalidMergeRequest("sprite %q cannot be merged into itself", dst.Name)
			}
		}

		AppendSpriteAssets(dst, sprites...)
		if err := VerifySprite(dst); err != nil {
			return err
		}
		e.mergeSources(target, sources)

		e.logf("merge-into: appended %d sprites to %q (%d scripts)", len(sprites), dst.Name, dst.ScriptCount())
		return nil
	})
}

// CopyLook duplicates a look of sprite, which must belong to p, as one
// guarded attempt. See CopyLook.
func (e *Engine) CopyLook(p *model.Project, sprite *model.Sprite, name string) (model.Look, error) {
	var look model.Look

	err := e.attempt(p, "copy-look", func() error {
		if !p.ContainsSprite(sprite) {
			return model.InvalidMergeRequest("sprite does not belong to project %q", p.Name)
		}
		l, err := CopyLook(sprite, name)
		if err != nil {
			return err
		}
		if err := VerifySprite(sprite); err != nil {
			return err
		}
		e.logf("copy-look: %q copied to %q in sprite %q", name, l.Name, sprite.Name)
		look = l
		return nil
	})
	return look, err
}

// CopySound duplicates a sound of sprite, which must belong to p, as one
// guarded attempt.
func (e *Engine) CopySound(p *model.Project, sprite *model.Sprite, name string) (model.Sound, error) {
	var sound model.Sound

	err := e.attempt(p, "copy-sound", func() error {
		if !p.ContainsSprite(sprite) {
			return model.InvalidMergeRequest("sprite does not belong to project %q", p.Name)
		}
		snd, err := CopySound(sprite, name)
		if err != nil {
			return err
		}
		if err := VerifySprite(sprite); err != nil {
			return err
		}
		e.logf("copy-sound: %q copied to %q in sprite %q", name, snd.Name, sprite.Name)
		sound = snd
		return nil
	})
	return sound, err
}

// attempt runs fn inside a guarded attempt on target. Any error from fn or
// from the global post-conditions rolls the attempt back.
func (e *Engine) attempt(target *model.Project, op string, fn func() error) error {
	if target == nil {
		return model.InvalidMergeRequest("%s requires a target project", op)
	}

	// Snapshot the target. A nested or concurrent attempt stops here
	// before anything is touched.
	g := e.Guard(target)
	if err := g.BeginAttempt(target); err != nil {
		return err
	}
	e.logf("%s: attempt started on project %q", op, target.Name)

	// Do the work, then check the project-scoped post-conditions.
	err := fn()
	if err == nil {
		err = VerifyGlobalState(target)
	}

	// Any failure restores the snapshot; the original error wins over a
	// failed rollback check.
	if err != nil {
		if rbErr := g.Rollback(target); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		e.logf("%s: rolled back project %q: %v", op, target.Name, err)
		return err
	}

	if err := g.Commit(); err != nil {
		return err
	}
	e.logf("%s: committed project %q", op, target.Name)
	return nil
}

func (e *Engine) mergeSources(target *model.Project, sources []*model.Project) {
	for _, src := range sources {
		if src == target {
			continue
		}
		MergeGlobalState(target, src)
		e.logf("merged global state of %q into %q", src.Name, target.Name)
	}
}

// validateMergeSprites checks that the sprite list is non-empty, has no
// nil or repeated entries, and that every sprite is owned by target or one
// of sources.
func validateMergeSprites(target *model.Project, sprites []*model.Sprite, sources []*model.Project) error {
	if len(sprites) == 0 {
		return model.InvalidMergeRequest("at least one source sprite is required")
	}
	if err := checkNotNil(sprites); err != nil {
		return err
	}
	for i, src := range sources {
		if src == nil {
			return model.InvalidMergeRequest("source project at position %d is nil", i)
		}
	}

	for i, s := range sprites {
		for _, prev := range sprites[:i] {
			if prev == s {
				return model.InvalidMergeRequest("sprite %q is listed more than once", s.Name)
			}
		}
		if !ownedBy(s, target, sources) {
			return model.InvalidMergeRequest("sprite %q does not belong to project %q or any source project", s.Name, target.Name)
		}
	}
	return nil
}

func ownedBy(s *model.Sprite, target *model.Project, sources []*model.Project) bool {
	if target.ContainsSprite(s) {
		return true
	}
	for _, src := range sources {
		if src.ContainsSprite(s) {
			return true
		}
	}
	return false
}
