package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultSeedFile is looked up when no seed file is configured.
const DefaultSeedFile = "categories.yaml"

// seedFile is the documented seed layout:
//
//	categories:
//	  - name: Groceries
//	    budget: 500
type seedFile struct {
	Categories []models.CategorySeed `yaml:"categories"`
}

// CategorySeedLoader reads the categories a brand new budget starts with.
type CategorySeedLoader struct {
	File   string
	logger logging.Logger
}

func NewCategorySeedLoader(file string, logger logging.Logger) *CategorySeedLoader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategorySeedLoader{File: file, logger: logger}
}

// FindConfigFile looks for filename as given, then under ./config and
// $HOME/.daily-dollar.
func (s *CategorySeedLoader) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", os.ErrNotExist
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".daily-dollar", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadSeeds returns the configured seed categories. A missing file is not an
// error: it yields no seeds and the built-in defaults apply.
//
// Besides the documented layout, a bare list of seeds and a plain
// "name: budget" mapping are accepted.
func (s *CategorySeedLoader) LoadSeeds() ([]models.CategorySeed, error) {
	filename := s.File
	if filename == "" {
		filename = DefaultSeedFile
	}

	path, err := s.FindConfigFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("Category seed file not found, using defaults", logging.F(logging.FieldFile, filename))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving category seed file: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- configured seed path
	if err != nil {
		return nil, fmt.Errorf("error reading category seed file: %w", err)
	}

	seeds, err := parseSeeds(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing category seed file %s: %w", path, err)
	}
	s.logger.Debug("Loaded category seeds",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(seeds)))
	return seeds, nil
}

func parseSeeds(data []byte) ([]models.CategorySeed, error) {
	var wrapped seedFile
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Categories) > 0 {
		return wrapped.Categories, nil
	}

	var list []models.CategorySeed
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var budgets map[string]float64
	if err := yaml.Unmarshal(data, &budgets); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(budgets))
	for name := range budgets {
		names = append(names, name)
	}
	sort.Strings(names)

	seeds := make([]models.CategorySeed, 0, len(names))
	for _, name := range names {
		seeds = append(seeds, models.CategorySeed{Name: name, Budget: budgets[name]})
	}
	return seeds, nil
}
