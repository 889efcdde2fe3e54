package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/project-merge/internal/model"
)

// Format is the encoding of a project document.
type Format string

const (
	// FormatJSON is JSON, with comments allowed on read.
	FormatJSON Format = "json"

	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// documentMode is the permission used for written documents.
const documentMode os.FileMode = 0o644

// FormatFor returns the document format implied by the extension of URL.
func FormatFor(URL string) Format {
	switch strings.ToLower(path.Ext(url.Path(URL))) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the project document at URL.
//
// After decoding, the project is normalized: sprites without an ID get a
// fresh one, and variables or lists without a scope get the scope of the
// container they were found in.
//
// Returns a CLIError with ExitProjectNotFound if the document does not exist.
func Load(ctx context.Context, URL string) (*model.Project, error) {
	fs := afs.New()

	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check project %s: %w", URL, err)
	}
	if !ok {
		return nil, model.NewCLIError(model.ExitProjectNotFound, fmt.Sprintf("project not found: %s", URL))
	}

	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", URL, err)
	}

	p, err := Decode(data, FormatFor(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", URL, err)
	}
	return p, nil
}

// Decode parses a project document in the given format and normalizes it.
func Decode(data []byte, format Format) (*model.Project, error) {
	var p model.Project

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
			return nil, err
		}
	}

	normalize(&p)
	return &p, nil
}

// Encode serializes p in the given format. JSON output is indented with two
// spaces and ends with a newline.
func Encode(p *model.Project, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Save writes p to URL in the format implied by its extension.
//
// Returns a CLIError with ExitSaveFailed if encoding or writing fails.
func Save(ctx context.Context, URL string, p *model.Project) error {
	data, err := Encode(p, FormatFor(URL))
	if err != nil {
		return model.WrapCLIError(model.ExitSaveFailed, fmt.Sprintf("failed to encode project %q", p.Name), err)
	}

	fs := afs.New()
	if err := fs.Upload(ctx, URL, documentMode, bytes.NewReader(data)); err != nil {
		return model.WrapCLIError(model.ExitSaveFailed, fmt.Sprintf("failed to write project to %s", URL), err)
	}
	return nil
}

func normalize(p *model.Project) {
	for i := range p.UserVariables {
		if p.UserVariables[i].Scope == "" {
			p.UserVariables[i].Scope = model.ScopeProject
		}
	}
	for i := range p.UserLists {
		if p.UserLists[i].Scope == "" {
			p.UserLists[i].Scope = model.ScopeProject
		}
	}

	for _, s := range p.Sprites {
		if s == nil {
			continue
		}
		if s.ID == "" {
			s.ID = model.NewSpriteID()
		}
		for i := range s.UserVariables {
			if s.UserVariables[i].Scope == "" {
				s.UserVariables[i].Scope = model.ScopeSprite
			}
		}
		for i := range s.UserLists {
			if s.UserLists[i].Scope == "" {
				s.UserLists[i].Scope = model.ScopeSprite
			}
		}
	}
}
