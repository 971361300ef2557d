package github

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avasquez/folio/internal/project"
)

// UpdateAll refreshes star and fork counts in place for every project
// that carries a github.com link, and returns how many were updated.
// Projects without a GitHub link, and repositories that have vanished,
// are logged and skipped rather than failing the run.
func (c *Client) UpdateAll(ctx context.Context, projects []project.Project) (int, error) {
	updated := 0
	for i := range projects {
		p := &projects[i]

		path, ok := p.GitHubPath()
		if !ok {
			slog.Warn("project has no GitHub link", "project", p.Name)
			continue
		}

		slog.Info("updating stats", "project", p.Name, "repo", path,
			"progress", slog.GroupValue(
				slog.Int("index", i+1),
				slog.Int("total", len(projects)),
			))

		stats, err := c.RepoStats(ctx, path)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				slog.Error("repository not found, keeping stale counts",
					"project", p.Name, "repo", path)
				continue
			}
			if ctx.Err() != nil {
				return updated, ctx.Err()
			}
			return updated, err
		}

		slog.Info("updated",
			"project", p.Name,
			"stars_before", p.Stars, "stars_after", stats.Stars,
			"forks_before", p.Forks, "forks_after", stats.Forks)

		p.Stars = stats.Stars
		p.Forks = stats.Forks
		updated++
	}
	return updated, nil
}
