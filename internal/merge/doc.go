// Package merge implements the project merge and import engine.
//
// The package is layered the same way a merge request flows through it:
//
//   - MergeGlobalState copies project-scoped user variables, user lists, and
//     broadcast messages from a source project into a target, skipping
//     anything already present.
//   - CombineSprites and AppendSpriteAssets union the scripts, looks, sounds,
//     and sprite-local variables/lists of several sprites.
//   - ImportSprite copies one sprite from a source project into a target
//     project, optionally adds a stage-placement script, and merges the
//     source's global state.
//   - Engine wraps those steps in a txn.Guard so each user action either
//     commits completely or leaves the target project untouched.
//
// Everything here is synchronous and single-threaded. The project is always
// passed explicitly; there is no package-level state.
package merge
