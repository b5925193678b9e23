// Package preview implements the device-side sync client: a polling
// loop that fetches the live configuration payload and re-renders the
// whole screen from scratch on every response.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the client's sync lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DefaultInterval is the polling cadence when none is configured.
const DefaultInterval = 1500 * time.Millisecond

// Instance is one placed component as the configuration endpoint
// serves it.
type Instance struct {
	InstanceID string         `json:"instanceId"`
	KindID     string         `json:"kindId"`
	KindType   string         `json:"kindType"`
	Params     map[string]any `json:"params"`
	Position   int            `json:"position"`
}

// payload is the configuration endpoint's response body, reduced to
// the fields the client renders from.
type payload struct {
	HasApp    bool       `json:"hasApp"`
	PageID    string     `json:"pageId"`
	PageName  string     `json:"pageName"`
	Instances []Instance `json:"instances"`
	Error     string     `json:"error"`
}

// Renderer turns one placed component into its on-screen content.
type Renderer interface {
	Render(inst Instance) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(inst Instance) (string, error)

func (f RendererFunc) Render(inst Instance) (string, error) {
	return f(inst)
}

// Block is one rendered component.
type Block struct {
	InstanceID string
	KindID     string
	Content    string
}

// Frame is a complete rendered screen. Every applied payload produces a
// fresh frame; nothing is patched in place.
type Frame struct {
	State    State
	PageName string
	Blocks   []Block
	Banner   string
	Seq      uint64
}

// Client polls the live configuration endpoint and renders frames.
type Client struct {
	baseURL   string
	appKey    string
	interval  time.Duration
	http      *http.Client
	renderers map[string]Renderer
	onFrame   func(Frame)
	log       *logrus.Logger

	mu      sync.Mutex
	state   State
	nextSeq uint64

	// applyMu serializes response application end to end, so frames
	// reach onFrame in sequence order. appliedSeq is only touched
	// under it.
	applyMu    sync.Mutex
	appliedSeq uint64
}

// Option configures a Client.
type Option func(*Client)

// WithInterval sets the polling interval.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRenderer registers the renderer for a kind id.
func WithRenderer(kindID string, r Renderer) Option {
	return func(c *Client) { c.renderers[kindID] = r }
}

// WithLogger replaces the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// OnFrame sets the callback invoked with every rendered frame.
func OnFrame(fn func(Frame)) Option {
	return func(c *Client) { c.onFrame = fn }
}

// NewClient creates a sync client for one app.
func NewClient(baseURL, appKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		appKey:    appKey,
		interval:  DefaultInterval,
		http:      &http.Client{Timeout: 10 * time.Second},
		renderers: make(map[string]Renderer),
		onFrame:   func(Frame) {},
		log:       logrus.New(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current sync state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run polls until ctx is cancelled. An immediate first fetch precedes
// the ticker so the screen is not blank for a whole interval. Each tick
// starts its own fetch; a slow response may still be in flight when the
// next tick fires, so responses carry sequence numbers and stale ones
// are discarded on arrival.
func (c *Client) Run(ctx context.Context) {
	c.setState(StateLoading)
	go c.fetchOnce(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go c.fetchOnce(ctx)
		}
	}
}

// SyncOnce performs a single fetch-and-render cycle.
func (c *Client) SyncOnce(ctx context.Context) {
	c.fetchOnce(ctx)
}

func (c *Client) fetchOnce(ctx context.Context) {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.mu.Unlock()

	p, err := c.fetch(ctx)
	if err != nil {
		c.log.WithError(err).Warn("config fetch failed")
		c.applyFailure(seq, err)
		return
	}
	c.applyPayload(seq, p)
}

func (c *Client) fetch(ctx context.Context) (payload, error) {
	// The timestamp query param defeats any intermediary cache.
	url := fmt.Sprintf("%s/api/config/%s?t=%s",
		c.baseURL, c.appKey, strconv.FormatInt(time.Now().UnixNano(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return payload{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return payload{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return payload{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return payload{}, fmt.Errorf("config endpoint returned %d", resp.StatusCode)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return payload{}, err
	}
	return p, nil
}

// applyPayload publishes a frame unless a newer response already
// landed. The staleness check comes first so discarded responses are
// never rendered, and the whole application runs under applyMu so
// frames cannot reach onFrame out of sequence order.
func (c *Client) applyPayload(seq uint64, p payload) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	if seq <= c.appliedSeq {
		c.log.WithField("seq", seq).Debug("discarding stale response")
		return
	}
	c.appliedSeq = seq

	frame := c.render(p)
	frame.Seq = seq
	c.setState(frame.State)
	c.onFrame(frame)
}

func (c *Client) applyFailure(seq uint64, err error) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	if seq <= c.appliedSeq {
		return
	}
	c.appliedSeq = seq
	c.setState(StateFailed)

	c.onFrame(Frame{
		State:  StateFailed,
		Banner: "Could not reach the builder. Retrying...",
		Seq:    seq,
	})
}

// render builds a complete frame from a payload. Unknown kinds get a
// visible placeholder instead of vanishing, and a renderer panic only
// loses its own block.
func (c *Client) render(p payload) Frame {
	if !p.HasApp {
		return Frame{
			State:  StateReady,
			Banner: "No pages saved yet. Save a page in the builder to see it here.",
		}
	}

	frame := Frame{
		State:    StateReady,
		PageName: p.PageName,
		Blocks:   make([]Block, 0, len(p.Instances)),
	}

	for _, inst := range p.Instances {
		frame.Blocks = append(frame.Blocks, Block{
			InstanceID: inst.InstanceID,
			KindID:     inst.KindID,
			Content:    c.renderInstance(inst),
		})
	}
	return frame
}

func (c *Client) renderInstance(inst Instance) (content string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{
				"kind":     inst.KindID,
				"instance": inst.InstanceID,
				"panic":    fmt.Sprint(r),
			}).Error("renderer panicked")
			content = fmt.Sprintf("[%s failed to render]", inst.KindID)
		}
	}()

	r, ok := c.renderers[inst.KindID]
	if !ok {
		return fmt.Sprintf("[unknown component %q]", inst.KindID)
	}

	out, err := r.Render(inst)
	if err != nil {
		c.log.WithError(err).WithField("kind", inst.KindID).Warn("render failed")
		return fmt.Sprintf("[%s failed to render]", inst.KindID)
	}
	return out
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
