// Package reference extracts catalog identifiers from resource URLs.
//
// A catalog reference looks like "<base>/<segment>/<digits>/", for example
// "https://swapi.dev/api/starships/13/". Templates are compiled once from
// configuration and are safe for concurrent use.
package reference

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/errors"
)

// Config names the base URL and the path segment of each resource type.
type Config struct {
	BaseURL  string
	Segments map[catalog.ResourceType]string
}

// Templates holds one compiled pattern per resource type.
// The zero value matches nothing.
type Templates struct {
	patterns map[catalog.ResourceType]template
}

type template struct {
	prefix string // "<base>/<segment>/"
	re     *regexp.Regexp
}

// Compile builds the templates. BaseURL and segments are matched literally;
// a trailing slash on BaseURL is ignored.
func Compile(cfg Config) (*Templates, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.NewValidationError("base_url", cfg.BaseURL, "cannot be empty")
	}
	if len(cfg.Segments) == 0 {
		return nil, errors.NewValidationError("segments", nil, "at least one resource segment is required")
	}

	t := &Templates{patterns: make(map[catalog.ResourceType]template, len(cfg.Segments))}
	owners := make(map[string]catalog.ResourceType, len(cfg.Segments))
	for rt, segment := range cfg.Segments {
		segment = strings.Trim(strings.TrimSpace(segment), "/")
		if segment == "" {
			return nil, errors.NewValidationError("segments."+rt.String(), segment, "cannot be empty")
		}
		// Parse must map every reference to exactly one resource type.
		if other, dup := owners[segment]; dup {
			a, b := sortedNames(other, rt)
			return nil, errors.NewValidationError("segments", segment,
				fmt.Sprintf("%q is configured for both %s and %s", segment, a, b))
		}
		owners[segment] = rt
		expr := fmt.Sprintf(`^%s/%s/(\d+)/$`, regexp.QuoteMeta(base), regexp.QuoteMeta(segment))
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.NewConfigError("reference", "invalid template for "+rt.String(), err)
		}
		t.patterns[rt] = template{prefix: base + "/" + segment + "/", re: re}
	}
	return t, nil
}

func sortedNames(a, b catalog.ResourceType) (string, string) {
	x, y := a.String(), b.String()
	if y < x {
		return y, x
	}
	return x, y
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level defaults.
func MustCompile(cfg Config) *Templates {
	t, err := Compile(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Extract returns the identifier embedded in url for the given resource type.
// ok is false when the url does not match the template or the digits do not
// fit the identifier range.
func (t *Templates) Extract(rt catalog.ResourceType, url string) (id catalog.ID, ok bool) {
	if t == nil {
		return 0, false
	}
	tpl, found := t.patterns[rt]
	if !found {
		return 0, false
	}
	m := tpl.re.FindStringSubmatch(url)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return catalog.ID(n), true
}

// Parse returns the reference for url, trying every compiled resource type.
func (t *Templates) Parse(url string) (Reference, bool) {
	if t == nil {
		return Reference{}, false
	}
	for rt := range t.patterns {
		if id, ok := t.Extract(rt, url); ok {
			return Reference{Type: rt, ID: id, URL: url}, true
		}
	}
	return Reference{}, false
}

// URL builds the canonical reference URL for a resource. It is the inverse of Extract.
func (t *Templates) URL(rt catalog.ResourceType, id catalog.ID) (string, bool) {
	if t == nil {
		return "", false
	}
	tpl, found := t.patterns[rt]
	if !found {
		return "", false
	}
	return tpl.prefix + strconv.Itoa(int(id)) + "/", true
}

// Reference is a parsed catalog resource URL.
type Reference struct {
	Type catalog.ResourceType
	ID   catalog.ID
	URL  string
}
