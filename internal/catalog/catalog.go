// Package catalog serves the static crop encyclopedia embedded in the binary.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
	"github.com/farmmitra/FarmMitraGo/pkg/slug"
)

//go:embed crops.json
var cropsFS embed.FS

// Catalog holds the crop encyclopedia keyed by slug.
type Catalog struct {
	crops map[string]domain.CropGuide
	names []string
}

// Load parses the embedded crop data. Called once at startup.
func Load() (*Catalog, error) {
	raw, err := cropsFS.ReadFile("crops.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded crop data: %w", err)
	}

	var crops map[string]domain.CropGuide
	if err := json.Unmarshal(raw, &crops); err != nil {
		return nil, fmt.Errorf("parse crop data: %w", err)
	}

	names := make([]string, 0, len(crops))
	for name := range crops {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{crops: crops, names: names}, nil
}

// Entry is a catalog listing item.
type Entry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Entries returns {slug, title} pairs for all crops, sorted by slug.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.names))
	for _, name := range c.names {
		entries = append(entries, Entry{Slug: name, Title: c.crops[name].Title})
	}
	return entries
}

// Names returns the slugs of all known crops, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Guide returns the full 16-point cultivation guide for the named crop.
// The name is slug-normalized, so "Pearl Millet" and "pearl-millet" match
// the same entry.
func (c *Catalog) Guide(name string) (*domain.CropGuide, error) {
	key := slug.Generate(name)
	guide, ok := c.crops[key]
	if !ok {
		return nil, apperrors.NotFound("crop", key)
	}
	return &guide, nil
}

// PestGuide returns the condensed 5-point pest management view for the named
// crop, derived from the full guide.
func (c *Catalog) PestGuide(name string) (*domain.PestGuide, error) {
	guide, err := c.Guide(name)
	if err != nil {
		return nil, err
	}

	return &domain.PestGuide{
		Title:              guide.Title,
		Identification:     guide.PestsAffecting + " Symptoms: " + guide.IdentityContext,
		Mixtures:           guide.PestControlMeasures,
		ApplicationProcess: guide.ProcessOfCultivation,
		SafetyPrecautions:  guide.HarvestingStorage + " Always follow PHI and PPE rules.",
		Recommendations:    guide.OrganicFarmingPractices,
	}, nil
}
