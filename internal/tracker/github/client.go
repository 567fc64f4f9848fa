package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v71/github"
	"github.com/usf-cs272/gradebot/internal/domain"
)

// Client implements tracker.IssueTracker against the GitHub REST API
type Client struct {
	api   *gogithub.Client
	owner string
	repo  string
}

// NewClient creates a Client for the given repository
func NewClient(token, owner, repo string) *Client {
	return &Client{
		api:   gogithub.NewClient(nil).WithAuthToken(token),
		owner: owner,
		repo:  repo,
	}
}

// NewClientWithBaseURL creates a Client against a non-default API endpoint,
// used by tests and GitHub Enterprise installs
func NewClientWithBaseURL(token, owner, repo, baseURL string) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL: %w", err)
	}

	api := gogithub.NewClient(nil).WithAuthToken(token)
	api.BaseURL = parsed

	return &Client{
		api:   api,
		owner: owner,
		repo:  repo,
	}, nil
}

func (c *Client) ListIssuesByLabels(ctx context.Context, labels []string) ([]domain.Issue, error) {
	opts := &gogithub.IssueListByRepoOptions{
		Labels: labels,
		State:  "all",
		ListOptions: gogithub.ListOptions{
			PerPage: 100,
		},
	}

	issues, resp, err := c.api.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing issues returned status %d", resp.StatusCode)
	}

	result := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, mapIssue(issue))
	}

	return result, nil
}

func (c *Client) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	opts := &gogithub.MilestoneListOptions{
		State: "all",
		ListOptions: gogithub.ListOptions{
			PerPage: 100,
		},
	}

	milestones, resp, err := c.api.Issues.ListMilestones(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing milestones returned status %d", resp.StatusCode)
	}

	result := make([]domain.Milestone, 0, len(milestones))
	for _, milestone := range milestones {
		result = append(result, mapMilestone(milestone))
	}

	return result, nil
}

func (c *Client) CreateMilestone(ctx context.Context, title, description string) (domain.Milestone, error) {
	milestone := &gogithub.Milestone{
		Title:       gogithub.Ptr(title),
		State:       gogithub.Ptr("open"),
		Description: gogithub.Ptr(description),
	}

	created, resp, err := c.api.Issues.CreateMilestone(ctx, c.owner, c.repo, milestone)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("failed to create milestone %q: %w", title, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return domain.Milestone{}, fmt.Errorf("creating milestone %q returned status %d", title, resp.StatusCode)
	}

	return mapMilestone(created), nil
}

func (c *Client) CreateIssue(ctx context.Context, issue domain.NewIssue) (domain.Issue, error) {
	labels := issue.Labels
	request := &gogithub.IssueRequest{
		Title:     gogithub.Ptr(issue.Title),
		Body:      gogithub.Ptr(issue.Body),
		Assignee:  gogithub.Ptr(issue.Assignee),
		Labels:    &labels,
		Milestone: gogithub.Ptr(issue.Milestone),
	}

	created, resp, err := c.api.Issues.Create(ctx, c.owner, c.repo, request)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("failed to create issue %q: %w", issue.Title, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return domain.Issue{}, fmt.Errorf("creating issue %q returned status %d", issue.Title, resp.StatusCode)
	}

	return mapIssue(created), nil
}

func (c *Client) CreateComment(ctx context.Context, issueNumber int, body string) error {
	comment := &gogithub.IssueComment{Body: gogithub.Ptr(body)}

	_, resp, err := c.api.Issues.CreateComment(ctx, c.owner, c.repo, issueNumber, comment)
	if err != nil {
		return fmt.Errorf("failed to comment on issue #%d: %w", issueNumber, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("commenting on issue #%d returned status %d", issueNumber, resp.StatusCode)
	}

	return nil
}

func (c *Client) CloseIssue(ctx context.Context, issueNumber int) error {
	request := &gogithub.IssueRequest{State: gogithub.Ptr("closed")}

	_, resp, err := c.api.Issues.Edit(ctx, c.owner, c.repo, issueNumber, request)
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", issueNumber, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("closing issue #%d returned status %d", issueNumber, resp.StatusCode)
	}

	return nil
}

func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (domain.Release, error) {
	release, resp, err := c.api.Repositories.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err != nil {
		return domain.Release{}, fmt.Errorf("failed to get release %q: %w", tag, err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Release{}, fmt.Errorf("getting release %q returned status %d", tag, resp.StatusCode)
	}

	return domain.Release{
		Tag:       release.GetTagName(),
		URL:       release.GetHTMLURL(),
		CreatedAt: release.GetCreatedAt().Time,
	}, nil
}

func mapIssue(issue *gogithub.Issue) domain.Issue {
	mapped := domain.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		URL:    issue.GetHTMLURL(),
	}

	if issue.Milestone != nil {
		milestone := mapMilestone(issue.Milestone)
		mapped.Milestone = &milestone
	}

	return mapped
}

func mapMilestone(milestone *gogithub.Milestone) domain.Milestone {
	return domain.Milestone{
		Number:      milestone.GetNumber(),
		Title:       milestone.GetTitle(),
		Description: milestone.GetDescription(),
		State:       milestone.GetState(),
	}
}
