package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

type repoMeta struct {
	Size        int      `json:"size"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	OpenIssues  int      `json:"open_issues_count"`
	Description string   `json:"description"`
	Homepage    string   `json:"homepage"`
	Topics      []string `json:"topics"`
	HasWiki     bool     `json:"has_wiki"`
	Archived    bool     `json:"archived"`
	PushedAt    string   `json:"pushed_at"`
	CreatedAt   string   `json:"created_at"`
	License     *struct {
		Key string `json:"key"`
	} `json:"license"`
}

type commitItem struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type contributorItem struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type issueItem struct {
	State       string         `json:"state"`
	PullRequest map[string]any `json:"pull_request"`
}

// snapshot is the raw payload of the five repository endpoints.
type snapshot struct {
	meta         repoMeta
	languages    map[string]int
	commits      []commitItem
	contributors []contributorItem
	issues       []issueItem
}

// fetch issues the five requests concurrently. The first failure cancels the rest.
func (c *Client) fetch(ctx context.Context, owner, name string) (*snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	base := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(name))
	list := url.Values{"per_page": {perPage}}
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, base, nil, &snap.meta)
	})
	g.Go(func() error {
		return c.getJSON(gctx, base+"/languages", nil, &snap.languages)
	})
	g.Go(func() error {
		var err error
		snap.commits, err = getItems[commitItem](gctx, c, base+"/commits", list)
		return err
	})
	g.Go(func() error {
		var err error
		snap.contributors, err = getItems[contributorItem](gctx, c, base+"/contributors", list)
		return err
	})
	g.Go(func() error {
		q := url.Values{"per_page": {perPage}, "state": {"all"}}
		var err error
		snap.issues, err = getItems[issueItem](gctx, c, base+"/issues", q)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
