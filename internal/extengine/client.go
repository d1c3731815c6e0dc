// Package extengine talks to the remote parser-backed lint service and
// exposes it behind the same per-cell and per-notebook surface as the
// heuristic engine.
package extengine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chater-marzougui/kaggle-lint-sub001/internal/lint"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/log"
	"github.com/chater-marzougui/kaggle-lint-sub001/internal/pysrc"
)

// cacheSize bounds the per-cell result cache. Notebook passes repeat
// unchanged cells constantly, so even a small cache removes most calls.
const cacheSize = 256

// wireError is the service's lint-result record.
type wireError struct {
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
	Msg      string `json:"msg"`
	Severity string `json:"severity"`
	Rule     string `json:"rule,omitempty"`
}

type lintResponse struct {
	Errors      []wireError `json:"errors"`
	SyntaxError string      `json:"syntaxError,omitempty"`
}

// Client is an engine adapter backed by a remote lint service. The service
// holds no per-notebook state between calls; callers reset it explicitly at
// the start of each pass.
type Client struct {
	baseURL string
	http    *http.Client
	log     *log.Logger
	cache   *lru.Cache[string, []wireError]

	mu       sync.Mutex
	ready    bool
	loadErr  error
	inflight chan struct{}
}

// New returns a client for the service at baseURL. A nil logger disables
// fault logging.
func New(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = &log.Logger{}
	}
	// size is a positive constant, the constructor cannot fail
	cache, _ := lru.New[string, []wireError](cacheSize)
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger,
		cache:   cache,
	}
}

// IsReady reports whether the service passed its readiness check.
func (c *Client) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Initialize performs the service readiness check. Concurrent callers
// coalesce onto one in-flight attempt; once ready, it returns immediately.
// A failed attempt is not sticky, the next call retries.
func (c *Client) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.ready {
		c.mu.Unlock()
		return nil
	}
	if c.inflight != nil {
		ch := c.inflight
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.loadErr
	}
	ch := make(chan struct{})
	c.inflight = ch
	c.mu.Unlock()

	err := c.ping(ctx)

	c.mu.Lock()
	c.ready = err == nil
	c.loadErr = err
	c.inflight = nil
	close(ch)
	c.mu.Unlock()
	return err
}

func (c *Client) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("engine service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine service not ready: %s", resp.Status)
	}
	return nil
}

// Reset clears the service's notebook state. Callers invoke it once at the
// start of every full-notebook pass.
func (c *Client) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resetting engine service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resetting engine service: %s", resp.Status)
	}
	return nil
}

// LintCell sends one cell's code to the service and returns its findings
// shifted by offset. Magic and empty cells are skipped without a call.
// Results for identical code are served out of the cache.
func (c *Client) LintCell(ctx context.Context, code string, offset, cellIndex int) ([]lint.Diagnostic, error) {
	if pysrc.IsBlank(code) || pysrc.IsMagic(code) {
		return nil, nil
	}
	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}

	key := codeKey(code)
	wire, ok := c.cache.Get(key)
	if !ok {
		var err error
		wire, err = c.lint(ctx, code)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, wire)
	}

	diags := make([]lint.Diagnostic, 0, len(wire))
	for _, w := range wire {
		diags = append(diags, lint.Diagnostic{
			Line:      w.Line + offset,
			Column:    w.Column,
			RuleID:    w.Rule,
			Severity:  lint.Severity(w.Severity),
			Message:   w.Msg,
			CellIndex: cellIndex,
			CellLine:  w.Line,
		})
	}
	return diags, nil
}

func (c *Client) lint(ctx context.Context, code string) ([]wireError, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/lint", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling engine service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("engine service returned %s", resp.Status)
	}
	var lr lintResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("decoding engine response: %w", err)
	}
	if lr.SyntaxError != "" {
		// a parse failure replaces the finding list with one entry
		return []wireError{{
			Line:     1,
			Msg:      lr.SyntaxError,
			Severity: string(lint.Error),
			Rule:     "syntax-error",
		}}, nil
	}
	return lr.Errors, nil
}

// LintNotebook runs the service over every cell in order. The service is
// reset once up front; a transport failure on one cell is logged and skipped
// so later cells still produce results.
func (c *Client) LintNotebook(ctx context.Context, cells []lint.Cell) ([]lint.Diagnostic, error) {
	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := c.Reset(ctx); err != nil {
		return nil, err
	}

	var all []lint.Diagnostic
	offset := 0
	for _, cell := range cells {
		diags, err := c.LintCell(ctx, cell.Code, offset, cell.Index)
		if err != nil {
			c.log.Printf("engine service failed on cell %d: %v", cell.Index, err)
		}
		for i := range diags {
			diags[i].Element = cell.Element
		}
		all = append(all, diags...)
		offset += cell.LineCount()
	}
	return all, nil
}

func codeKey(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
