package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Scope identifies who owns a user variable or user list.
//
// Project-scoped containers are shared by every sprite of a project and are
// merged by the global state merger. Sprite-scoped containers travel with
// their sprite and are merged by the sprite asset combiner.
type Scope string

const (
	// ScopeProject marks a container visible to all sprites of a project.
	ScopeProject Scope = "project"

	// ScopeSprite marks a container local to a single sprite.
	ScopeSprite Scope = "sprite"
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks whether the Scope value is one of the predefined scopes.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeProject, ScopeSprite:
		return true
	default:
		return false
	}
}

// ParseScope converts a string to a Scope.
// Returns an error if the string does not match any valid scope.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(s))
	if !scope.IsValid() {
		return "", fmt.Errorf("invalid scope: %q (valid: project, sprite)", s)
	}
	return scope, nil
}

// UserVariable is a named mutable data container.
//
// Two variables are the same variable when their name and scope match;
// the current value does not participate in equality. This is what lets a
// merge recognize that "score" in the source project is already present in
// the target even when the two hold different values.
type UserVariable struct {
	Name  string `json:"name" yaml:"name"`
	Scope Scope  `json:"scope" yaml:"scope"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Equal reports whether v and o denote the same variable (name + scope).
func (v UserVariable) Equal(o UserVariable) bool {
	return v.Name == o.Name && v.Scope == o.Scope
}

// UserList is a named, ordered list of values. Equality follows the same
// name + scope rule as UserVariable; items are ignored.
type UserList struct {
	Name  string   `json:"name" yaml:"name"`
	Scope Scope    `json:"scope" yaml:"scope"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// Equal reports whether l and o denote the same list (name + scope).
func (l UserList) Equal(o UserList) bool {
	return l.Name == o.Name && l.Scope == o.Scope
}

// Clone returns a copy of the list with its own backing item slice.
func (l UserList) Clone() UserList {
	c := l
	c.Items = slices.Clone(l.Items)
	return c
}

// EqualBroadcastMessages is the equality function for broadcast messages:
// plain string equality. It exists so callers can pass it to the dedup
// helpers next to UserVariable.Equal and UserList.Equal.
func EqualBroadcastMessages(a, b string) bool {
	return a == b
}

// BroadcastMessageContainer is the ordered set of broadcast message names
// known to a project.
type BroadcastMessageContainer struct {
	Messages []string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Contains reports whether msg is already registered.
func (c *BroadcastMessageContainer) Contains(msg string) bool {
	for _, m := range c.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// Add registers msg unless it is already present. It returns true when the
// message was added.
func (c *BroadcastMessageContainer) Add(msg string) bool {
	if c.Contains(msg) {
		return false
	}
	c.Messages = append(c.Messages, msg)
	return true
}

// Clone returns a container with its own backing slice.
func (c BroadcastMessageContainer) Clone() BroadcastMessageContainer {
	return BroadcastMessageContainer{Messages: slices.Clone(c.Messages)}
}

// Look is a visual asset of a sprite. Looks are unique by name within
// a sprite; FileName points at the image managed by the asset layer.
type Look struct {
	Name     string `json:"name" yaml:"name"`
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
}

// SameName reports whether two looks collide by name.
func (l Look) SameName(o Look) bool {
	return l.Name == o.Name
}

// Sound is an audio asset of a sprite. Sounds are unique by name within
// a sprite.
type Sound struct {
	Name     string `json:"name" yaml:"name"`
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
}

// SameName reports whether two sounds collide by name.
func (s Sound) SameName(o Sound) bool {
	return s.Name == o.Name
}

// Brick is a single executable block inside a script. The merge engine
// never interprets bricks; Type and Args are carried verbatim.
type Brick struct {
	Type string   `json:"type" yaml:"type"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// Script is an ordered sequence of bricks started by an event.
//
// Scripts are opaque to the merge engine apart from their count and
// identity: two structurally identical scripts are still two scripts.
type Script struct {
	Event  string  `json:"event" yaml:"event"`
	Bricks []Brick `json:"bricks,omitempty" yaml:"bricks,omitempty"`
}

// Clone returns a deep copy of the script. A nil script clones to nil.
func (s *Script) Clone() *Script {
	if s == nil {
		return nil
	}
	c := &Script{Event: s.Event}
	if s.Bricks != nil {
		c.Bricks = make([]Brick, len(s.Bricks))
		for i, b := range s.Bricks {
			c.Bricks[i] = Brick{Type: b.Type, Args: slices.Clone(b.Args)}
		}
	}
	return c
}

// Event and brick identifiers used by the stage-placement script.
const (
	// EventWhenStarted fires when the project starts.
	EventWhenStarted = "when_started"

	// BrickPlaceAt moves the sprite to the X/Y position in its arguments.
	BrickPlaceAt = "place_at"
)

// Point is a stage position in stage coordinates.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// NewPlacementScript builds the script the editor appends to a sprite that
// was visually placed on the stage during import:
//
//	when_started
//	  place_at <x> <y>
func NewPlacementScript(pos Point) *Script {
	return &Script{
		Event: EventWhenStarted,
		Bricks: []Brick{
			{Type: BrickPlaceAt, Args: []string{fmt.Sprint(pos.X), fmt.Sprint(pos.Y)}},
		},
	}
}

// Sprite is a named actor owning scripts, looks, sounds, and sprite-local
// variables and lists.
//
// Merge logic identifies sprites by pointer identity, never by name: two
// sprites called "Cat" are different sprites. ID is the persistent form of
// that identity so it survives serialization.
type Sprite struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	IsClone bool   `json:"isClone,omitempty" yaml:"isClone,omitempty"`

	Scripts       []*Script      `json:"scripts,omitempty" yaml:"scripts,omitempty"`
	Looks         []Look         `json:"looks,omitempty" yaml:"looks,omitempty"`
	Sounds        []Sound        `json:"sounds,omitempty" yaml:"sounds,omitempty"`
	UserVariables []UserVariable `json:"userVariables,omitempty" yaml:"userVariables,omitempty"`
	UserLists     []UserList     `json:"userLists,omitempty" yaml:"userLists,omitempty"`
}

// NewSpriteID returns a fresh identity for a sprite.
func NewSpriteID() string {
	return uuid.NewString()
}

// NewSprite creates an empty sprite with a fresh identity.
func NewSprite(name string) *Sprite {
	return &Sprite{ID: NewSpriteID(), Name: name}
}

// DeepCopy returns an independent copy of the sprite that keeps its ID.
// Mutating the copy never affects the original and vice versa. Nil and
// empty collections stay distinct.
func (s *Sprite) DeepCopy() *Sprite {
	c := &Sprite{
		ID:      s.ID,
		Name:    s.Name,
		IsClone: s.IsClone,
	}
	if s.Scripts != nil {
		c.Scripts = make([]*Script, len(s.Scripts))
		for i, sc := range s.Scripts {
			c.Scripts[i] = sc.Clone()
		}
	}
	c.Looks = slices.Clone(s.Looks)
	c.Sounds = slices.Clone(s.Sounds)
	c.UserVariables = slices.Clone(s.UserVariables)
	if s.UserLists != nil {
		c.UserLists = make([]UserList, len(s.UserLists))
		for i, l := range s.UserLists {
			c.UserLists[i] = l.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the sprite with a new identity.
func (s *Sprite) Clone() *Sprite {
	c := s.DeepCopy()
	c.ID = NewSpriteID()
	return c
}

// ScriptCount returns the number of scripts attached to the sprite.
func (s *Sprite) ScriptCount() int {
	return len(s.Scripts)
}

// LookNames returns the look names in order.
func (s *Sprite) LookNames() []string {
	names := make([]string, 0, len(s.Looks))
	for _, l := range s.Looks {
		names = append(names, l.Name)
	}
	return names
}

// SoundNames returns the sound names in order.
func (s *Sprite) SoundNames() []string {
	names := make([]string, 0, len(s.Sounds))
	for _, snd := range s.Sounds {
		names = append(names, snd.Name)
	}
	return names
}

// LookByName returns the look called name, if any.
func (s *Sprite) LookByName(name string) (Look, bool) {
	for _, l := range s.Looks {
		if l.Name == name {
			return l, true
		}
	}
	return Look{}, false
}

// SoundByName returns the sound called name, if any.
func (s *Sprite) SoundByName(name string) (Sound, bool) {
	for _, snd := range s.Sounds {
		if snd.Name == name {
			return snd, true
		}
	}
	return Sound{}, false
}

// Project is the top-level container of sprites and project-scoped state.
//
// Sprites holds every sprite of the project including clones, in order.
// UserVariables, UserLists and Broadcasts hold the project-scoped state that
// must stay duplicate-free across any merge or import.
type Project struct {
	Name          string                    `json:"name" yaml:"name"`
	Sprites       []*Sprite                 `json:"sprites,omitempty" yaml:"sprites,omitempty"`
	UserVariables []UserVariable            `json:"userVariables,omitempty" yaml:"userVariables,omitempty"`
	UserLists     []UserList                `json:"userLists,omitempty" yaml:"userLists,omitempty"`
	Broadcasts    BroadcastMessageContainer `json:"broadcasts" yaml:"broadcasts"`
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{Name: name}
}

// AddSprite appends a sprite to the project's sprite sequence.
func (p *Project) AddSprite(s *Sprite) {
	p.Sprites = append(p.Sprites, s)
}

// ContainsSprite reports whether s (by pointer identity) belongs to the
// project's sprite sequence.
func (p *Project) ContainsSprite(s *Sprite) bool {
	if s == nil {
		return false
	}
	for _, sp := range p.Sprites {
		if sp == s {
			return true
		}
	}
	return false
}

// SpriteByName returns the first sprite called name, or nil. Nil entries
// are skipped.
func (p *Project) SpriteByName(name string) *Sprite {
	for _, sp := range p.Sprites {
		if sp != nil && sp.Name == name {
			return sp
		}
	}
	return nil
}

// SpriteNames returns the names of all sprites in order, clones included.
// Nil entries are skipped.
func (p *Project) SpriteNames() []string {
	names := make([]string, 0, len(p.Sprites))
	for _, sp := range p.Sprites {
		if sp == nil {
			continue
		}
		names = append(names, sp.Name)
	}
	return names
}

// ValidateSpriteName checks that a sprite name is usable: it must not be
// empty or consist only of whitespace.
func ValidateSpriteName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("sprite name must not be empty")
	}
	return nil
}
