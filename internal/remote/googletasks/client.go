// Package googletasks implements remote.Transport on top of the Google Tasks
// API. A document maps to one Google task list: the list title is the
// document title and each task's status is its done flag.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasked/internal/config"
	"tasked/internal/remote"
	"tasked/internal/todo"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client syncs a document with one Google task list.
type Client struct {
	svc      *tasks.Service
	listName string
	timeout  time.Duration
	log      *log.Logger
}

// New creates a client for the list named listName, or the default list
// when listName is empty. Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, listName string) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	c, err := NewWithHTTPClient(ctx, httpClient, listName)
	if err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout > 0 {
		c.timeout = cfg.HTTPTimeout
	}
	if cfg.Log != nil {
		c.log = cfg.Log
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client. Extra
// options, such as option.WithEndpoint, are passed to the API service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, listName string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{
		svc:      svc,
		listName: listName,
		timeout:  APITimeout,
		log:      log.New(io.Discard),
	}, nil
}

// Pull implements remote.Transport.
func (c *Client) Pull(ctx context.Context) (*todo.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	list, err := c.resolveList(ctx)
	if err != nil {
		return nil, err
	}
	items, err := c.listTasks(ctx, list.Id)
	if err != nil {
		return nil, err
	}
	c.log.Debug("pulled google tasks", "list", list.Title, "tasks", len(items))
	return ToDocument(list.Title, items)
}

// Push implements remote.Transport. The remote list is reconciled with doc:
// tasks are matched by title, statuses are patched, missing tasks inserted,
// extra tasks deleted and matched tasks moved into the document's order.
func (c *Client) Push(ctx context.Context, doc *todo.Document) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	list, err := c.resolveList(ctx)
	if err != nil {
		return err
	}
	items, err := c.listTasks(ctx, list.Id)
	if err != nil {
		return err
	}

	plan := Reconcile(items, doc)
	c.log.Debug("pushing google tasks", "list", list.Title,
		"patch", len(plan.Patch), "insert", len(plan.Insert), "delete", len(plan.Delete),
		"reorder", plan.Reorder)

	if doc.Title != "" && doc.Title != list.Title {
		if _, err := c.svc.Tasklists.Patch(list.Id, &tasks.TaskList{Title: doc.Title}).Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}
	for _, p := range plan.Patch {
		patch := &tasks.Task{Status: status(p.Done)}
		if !p.Done {
			patch.NullFields = []string{"Completed"}
		}
		if _, err := c.svc.Tasks.Patch(list.Id, p.ID, patch).Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}
	created := make([]string, len(plan.Insert))
	for i, ins := range plan.Insert {
		after := ins.After
		if ins.AfterInsert >= 0 {
			after = created[ins.AfterInsert]
		}
		call := c.svc.Tasks.Insert(list.Id, &tasks.Task{Title: ins.Title, Status: status(ins.Done)})
		if after != "" {
			call = call.Previous(after)
		}
		task, err := call.Context(ctx).Do()
		if err != nil {
			return wrapError(err)
		}
		created[i] = task.Id
	}
	for _, id := range plan.Delete {
		if err := c.svc.Tasks.Delete(list.Id, id).Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}
	if !plan.Reorder {
		return nil
	}
	return c.reorder(ctx, list.Id, plan, created)
}

// reorder moves remote tasks so they follow plan.Order. created holds the IDs
// of the tasks made for plan.Insert.
func (c *Client) reorder(ctx context.Context, listID string, plan Plan, created []string) error {
	want := make([]string, len(plan.Order))
	for i, ref := range plan.Order {
		if ref.ID != "" {
			want[i] = ref.ID
		} else {
			want[i] = created[ref.Insert]
		}
	}

	items, err := c.listTasks(ctx, listID)
	if err != nil {
		return err
	}
	current := make([]string, len(items))
	for i, item := range items {
		current[i] = item.Id
	}

	moves := Reorder(current, want)
	c.log.Debug("moving google tasks", "moves", len(moves))
	for _, m := range moves {
		call := c.svc.Tasks.Move(listID, m.ID)
		if m.After != "" {
			call = call.Previous(m.After)
		}
		if _, err := call.Context(ctx).Do(); err != nil {
			return wrapError(err)
		}
	}
	return nil
}

// resolveList finds the configured list by name (case-insensitive, trimmed),
// or the default list.
func (c *Client) resolveList(ctx context.Context) (*tasks.TaskList, error) {
	if c.listName == "" {
		list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
		if err != nil {
			return nil, wrapError(err)
		}
		return list, nil
	}

	nameLower := strings.ToLower(strings.TrimSpace(c.listName))
	var matches []*tasks.TaskList
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, list)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: list not found: %s", remote.ErrTransport, c.listName)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: ambiguous list name: %s", remote.ErrTransport, c.listName)
	}
}

// listTasks returns every task of the list, completed ones included, in
// position order.
func (c *Client) listTasks(ctx context.Context, listID string) ([]*tasks.Task, error) {
	var items []*tasks.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func status(done bool) string {
	if done {
		return statusCompleted
	}
	return statusNeedsAction
}

// wrapError maps API errors onto the remote error kinds.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", remote.ErrTransport)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: tasked login)", remote.ErrAuth)
		case http.StatusNotFound:
			return fmt.Errorf("%w: not found", remote.ErrTransport)
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token refresh failed (run: tasked login)", remote.ErrAuth)
	}

	return fmt.Errorf("%w: %v", remote.ErrTransport, err)
}
