// Package cluster tags feedback text with topical clusters by keyword matching.
package cluster

import (
	"errors"
	"fmt"
	"strings"

	"feedbackanalysis/internal/models"
)

var (
	ErrDuplicateCluster = errors.New("duplicate cluster name")
	ErrEmptyClusterName = errors.New("cluster name is empty")

	// ErrReservedClusterName is returned for a definition named Uncategorized,
	// which is only ever produced when nothing matches.
	ErrReservedClusterName = errors.New("cluster name is reserved")
)

// Definition is a named cluster and the keywords that select it.
type Definition struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Index matches text against an ordered set of cluster definitions.
// It is immutable after New and safe for concurrent use.
type Index struct {
	defs []Definition
}

// New builds an index. Keywords are lower-cased with surrounding whitespace
// kept, so " bag " only matches bag as a separate word. Blank keywords are dropped.
// Definition order is kept and determines the order of Identify results.
func New(defs []Definition) (*Index, error) {
	seen := make(map[string]bool, len(defs))
	normalized := make([]Definition, 0, len(defs))

	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, ErrEmptyClusterName
		}
		if strings.EqualFold(name, models.Uncategorized) {
			return nil, fmt.Errorf("%w: %s", ErrReservedClusterName, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCluster, name)
		}
		seen[name] = true

		keywords := make([]string, 0, len(d.Keywords))
		for _, k := range d.Keywords {
			if strings.TrimSpace(k) == "" {
				continue
			}
			keywords = append(keywords, strings.ToLower(k))
		}
		normalized = append(normalized, Definition{Name: name, Keywords: keywords})
	}

	return &Index{defs: normalized}, nil
}

// Identify returns every cluster with a keyword occurring in text, compared
// case-insensitively as a substring. Never empty: when nothing matches the
// result is exactly [Uncategorized].
func (ix *Index) Identify(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, d := range ix.defs {
		for _, k := range d.Keywords {
			if strings.Contains(lower, k) {
				matched = append(matched, d.Name)
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{models.Uncategorized}
	}
	return matched
}

// Names returns cluster names in definition order.
func (ix *Index) Names() []string {
	names := make([]string, len(ix.defs))
	for i, d := range ix.defs {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of clusters.
func (ix *Index) Len() int {
	return len(ix.defs)
}
