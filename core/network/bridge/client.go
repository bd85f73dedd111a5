package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"craftwarden/core/item"
	"craftwarden/core/network"
	"craftwarden/core/utils"
)

// Client talks to the in-world RPC bridge. It implements
// network.Inventory, network.Pool, network.PatternSource and
// network.Submitter.
type Client struct {
	base string
	http *http.Client
}

// New creates a bridge client with strict transport timeouts.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(cfg.Endpoint, "/")
	if base == "" {
		return nil, fmt.Errorf("bridge endpoint is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		base: base,
		http: &http.Client{Transport: transport, Timeout: timeoutDuration},
	}, nil
}

// Items retrieves a fresh inventory snapshot.
func (c *Client) Items(ctx context.Context) ([]network.Item, error) {
	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, "/v1/items", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]network.Item, 0, len(resp.Items))
	for _, fields := range resp.Items {
		items = append(items, itemFromRecord(fields))
	}
	return items, nil
}

// itemFromRecord lifts the known fields out of a raw bridge record.
func itemFromRecord(fields map[string]any) network.Item {
	return network.Item{
		Name:      utils.ToString(fields["name"]),
		Damage:    utils.ToFloat(fields["damage"]),
		Label:     utils.ToString(fields["label"]),
		Size:      utils.ToFloat(fields["size"]),
		Craftable: utils.ToBool(fields["isCraftable"]),
		HasTag:    utils.ToBool(fields["hasTag"]),
		Fields:    fields,
	}
}

// CPUs retrieves a snapshot of the crafting CPU pool.
func (c *Client) CPUs(ctx context.Context) ([]network.CPU, error) {
	var resp struct {
		CPUs []struct {
			Busy bool `json:"busy"`
		} `json:"cpus"`
	}
	if err := c.call(ctx, http.MethodGet, "/v1/cpus", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list cpus: %w", err)
	}

	cpus := make([]network.CPU, 0, len(resp.CPUs))
	for _, cpu := range resp.CPUs {
		cpus = append(cpus, network.CPU{Busy: cpu.Busy})
	}
	return cpus, nil
}

// PatternsFor resolves the crafting patterns matching an identity.
func (c *Client) PatternsFor(ctx context.Context, id item.Identity) ([]network.Pattern, error) {
	req := map[string]any{"filter": id.Record()}
	var resp struct {
		Patterns []struct {
			ID     string `json:"id"`
			Output string `json:"output"`
		} `json:"patterns"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/patterns", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to resolve patterns for %s: %w", id.Key(), err)
	}

	patterns := make([]network.Pattern, 0, len(resp.Patterns))
	for _, p := range resp.Patterns {
		patterns = append(patterns, network.Pattern{ID: p.ID, Output: p.Output})
	}
	return patterns, nil
}

// Submit dispatches a crafting job and returns its handle.
func (c *Client) Submit(ctx context.Context, pattern network.Pattern, amount int) (network.Job, error) {
	req := map[string]any{"pattern": pattern.ID, "amount": amount}
	var resp struct {
		Job string `json:"job"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/jobs", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to submit job for pattern %s: %w", pattern.ID, err)
	}
	if resp.Job == "" {
		return nil, fmt.Errorf("bridge returned no job id for pattern %s", pattern.ID)
	}
	return &job{client: c, id: resp.Job}, nil
}

// job is the bridge-backed network.Job implementation.
type job struct {
	client *Client
	id     string
}

type jobStatus struct {
	Done     bool   `json:"done"`
	Canceled bool   `json:"canceled"`
	Reason   string `json:"reason"`
}

func (j *job) status(ctx context.Context) (*jobStatus, error) {
	var status jobStatus
	if err := j.client.call(ctx, http.MethodGet, "/v1/jobs/"+j.id, nil, &status); err != nil {
		return nil, fmt.Errorf("failed to check job %s: %w", j.id, err)
	}
	return &status, nil
}

// Canceled reports cancellation. A cancellation reason supplied by the
// bridge is surfaced as the error so the lifecycle tracker records it
// on the recipe.
func (j *job) Canceled(ctx context.Context) (bool, error) {
	status, err := j.status(ctx)
	if err != nil {
		return false, err
	}
	if status.Canceled && status.Reason != "" {
		return false, fmt.Errorf("%s", status.Reason)
	}
	return status.Canceled, nil
}

// Done reports completion.
func (j *job) Done(ctx context.Context) (bool, error) {
	status, err := j.status(ctx)
	if err != nil {
		return false, err
	}
	return status.Done, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bridge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
