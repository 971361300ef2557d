// Package project models the portfolio catalog: a JSON array of
// projects with languages, star counts, and outbound links.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Link is a named outbound URL on a project card.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Project is one portfolio entry. The field names match the catalog
// file consumed by the site template.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Stars       int      `json:"stars_count"`
	Forks       int      `json:"forks_count"`
	Links       []Link   `json:"links,omitempty"`
}

// GitHubPath returns the owner/repo path of the project's first
// github.com link, if it has one.
func (p Project) GitHubPath() (string, bool) {
	const prefix = "https://github.com/"
	for _, l := range p.Links {
		if strings.HasPrefix(l.URL, prefix) {
			path := strings.TrimSuffix(strings.TrimPrefix(l.URL, prefix), "/")
			if path != "" {
				return path, true
			}
		}
	}
	return "", false
}

// Load reads a catalog file.
func Load(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return projects, nil
}

// Save writes a catalog file with the same two-space indentation the
// data tooling has always produced, so diffs stay reviewable.
func Save(path string, projects []Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
