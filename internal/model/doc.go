// Package model defines the domain types and value objects for the
// project-merge engine.
//
// This package contains pure data structures: projects, sprites, scripts,
// looks, sounds, user variables, user lists, and broadcast messages. Merge
// and import operations treat these purely as in-memory structures; they are
// never rendered or executed here.
//
// Sprites are tracked by pointer identity during a merge, with a stable
// UUID so that identity survives a round trip through a project document.
// Variables, lists, and broadcast messages are compared by explicit value
// equality (Equal methods) rather than struct comparison.
//
// The package also defines the merge error kinds (MergeError), CLI exit
// codes (ExitCode), and the CLIError type that carries exit codes for
// proper OS process exit handling.
package model
