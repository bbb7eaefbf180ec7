// Package catalog loads the scenario catalog and seeds it into an empty store.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

//go:embed scenarios.yml
var defaultCatalog []byte

// FreeScenarioID is the id of the free scenario; drawable scenarios follow it.
const FreeScenarioID = 1

var (
	ErrNoFreeScenario       = errors.New("catalog has no free scenario")
	ErrManyFreeScenarios    = errors.New("catalog has more than one free scenario")
	ErrEmptyScenarioText    = errors.New("catalog scenario text is empty")
	ErrDuplicateScenarioTxt = errors.New("catalog scenario text is duplicated")
)

type Entry struct {
	Text string `yaml:"text"`
	Free bool   `yaml:"free"`
}

type Catalog struct {
	Entries []Entry `yaml:"scenarios"`
}

type scenarioStore interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, scenarios []entity.Scenario) error
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file; an empty path selects the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (that *Catalog) Validate() error {
	free := 0
	texts := make(map[string]struct{}, len(that.Entries))

	for i, entry := range that.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptyScenarioText, i)
		}

		if _, dup := texts[text]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateScenarioTxt, text)
		}
		texts[text] = struct{}{}

		if entry.Free {
			free++
		}
	}

	switch {
	case free == 0:
		return ErrNoFreeScenario
	case free > 1:
		return fmt.Errorf("%w: %d found", ErrManyFreeScenarios, free)
	}

	return nil
}

// Scenarios gives the free entry id 1 and numbers the rest from 2 in file order.
func (that *Catalog) Scenarios() []entity.Scenario {
	scenarios := make([]entity.Scenario, 1, len(that.Entries))
	next := int64(FreeScenarioID + 1)

	for _, entry := range that.Entries {
		scenario := entity.Scenario{Text: strings.TrimSpace(entry.Text), Free: entry.Free}

		if entry.Free {
			scenario.ID = FreeScenarioID
			scenarios[0] = scenario
			continue
		}

		scenario.ID = next
		next++
		scenarios = append(scenarios, scenario)
	}

	return scenarios
}

// PoolSize is the number of non-free scenarios available for drawing.
func (that *Catalog) PoolSize() int {
	return len(that.Entries) - 1
}

// Seed inserts the catalog into store unless it already holds scenarios.
// It returns the number of scenarios inserted.
func Seed(ctx context.Context, logger *slog.Logger, store scenarioStore, catalog *Catalog) (int, error) {
	log := logger.With("method", "Seed")

	count, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count scenarios: %w", err)
	}

	if count > 0 {
		if count != len(catalog.Entries) {
			log.Warn("store already seeded, catalog changes are ignored",
				"stored", count, "catalog", len(catalog.Entries))
		}

		return 0, nil
	}

	scenarios := catalog.Scenarios()
	if err = store.Insert(ctx, scenarios); err != nil {
		return 0, fmt.Errorf("failed to insert scenarios: %w", err)
	}

	return len(scenarios), nil
}
