// Package naming allocates unique display names for sprites, looks, and
// sounds.
//
// The core rule mirrors what a user sees in the editor when copying an
// asset:
//
//	name → name (1) → name (2) → ...
//
// A name that already carries a " (n)" suffix is treated as its stem, so
// copying "meow (1)" yields "meow (2)" rather than "meow (1) (1)". The
// Allocator remembers every name it hands out, so a batch of allocations
// never collides with itself.
package naming
