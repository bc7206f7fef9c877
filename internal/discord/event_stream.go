package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/BinhiHeritage_Go/internal/sse"
)

const (
	streamMinBackoff = 1 * time.Second
	streamMaxBackoff = 30 * time.Second
	streamLineLimit  = 64 * 1024
	streamPath       = apiPrefix + "/events"
)

// stream connection states
const (
	streamIdle int32 = iota
	streamConnected
	streamBackoff
)

var errStreamClosed = errors.New("event stream closed by server")

// StreamEvent is one museum event as delivered over the stream
type StreamEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	UserID    string          `json:"user_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// StreamHandler reacts to one event type
type StreamHandler func(StreamEvent) error

// EventStream follows the API's event feed and fans events out to handlers.
// Only the types that have handlers are requested from the server.
type EventStream struct {
	baseURL string
	apiKey  string
	client  *http.Client

	mu       sync.RWMutex
	handlers map[string][]StreamHandler
	lastID   string

	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}
}

// NewEventStream creates a stream against the API at baseURL
func NewEventStream(baseURL, apiKey string) *EventStream {
	return &EventStream{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Transport: &http.Transport{}},
		handlers: make(map[string][]StreamHandler),
	}
}

// On adds a handler for an event type. Register before Start.
func (s *EventStream) On(eventType string, h StreamHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = append(s.handlers[eventType], h)
}

// Start follows the stream in the background until ctx ends or Stop is called
func (s *EventStream) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
}

// Stop ends the stream and waits for the follower to exit. Safe to call twice.
func (s *EventStream) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.client.CloseIdleConnections()
}

// Connected reports whether the stream is currently attached
func (s *EventStream) Connected() bool {
	return s.state.Load() == streamConnected
}

type backoff struct {
	next time.Duration
}

func (b *backoff) wait() time.Duration {
	if b.next == 0 {
		b.next = streamMinBackoff
	}
	d := b.next
	b.next = min(b.next*2, streamMaxBackoff)
	return d
}

func (b *backoff) reset() { b.next = 0 }

func (s *EventStream) run(ctx context.Context) {
	defer close(s.done)
	defer s.state.Store(streamIdle)

	var retry backoff
	failures := 0
	for {
		delivered, err := s.follow(ctx)
		if ctx.Err() != nil {
			slog.Info(LogMsgStreamStopped)
			return
		}
		if delivered {
			retry.reset()
			failures = 0
		}
		failures++
		s.state.Store(streamBackoff)

		d := retry.wait()
		slog.Warn(LogMsgStreamDropped, "error", err, "retry_in", d, "failures", failures)

		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			slog.Info(LogMsgStreamStopped)
			return
		}
	}
}

func (s *EventStream) endpoint() string {
	s.mu.RLock()
	types := make([]string, 0, len(s.handlers))
	for t := range s.handlers {
		types = append(types, t)
	}
	s.mu.RUnlock()

	if len(types) == 0 {
		return s.baseURL + streamPath
	}
	sort.Strings(types)
	q := url.Values{sse.QueryParamTypes: {strings.Join(types, ",")}}
	return s.baseURL + streamPath + "?" + q.Encode()
}

// follow holds one connection open; delivered reports whether any event arrived
func (s *EventStream) follow(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if s.apiKey != "" {
		req.Header.Set(apiKeyHeader, s.apiKey)
	}
	s.mu.RLock()
	if s.lastID != "" {
		req.Header.Set("Last-Event-ID", s.lastID)
	}
	s.mu.RUnlock()

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("event stream returned %d", resp.StatusCode)
	}

	s.state.Store(streamConnected)
	slog.Info(LogMsgStreamConnected, "url", req.URL.String())

	return s.consume(resp.Body)
}

// consume dispatches every frame read from r
func (s *EventStream) consume(r io.Reader) (bool, error) {
	delivered := false
	err := scanFrames(r, func(f frame) {
		if s.dispatch(f) {
			delivered = true
		}
	})
	return delivered, err
}

type frame struct {
	id    string
	event string
	data  []string
}

// scanFrames splits an event stream into frames. Multi-line data fields are
// joined with newlines and comment lines are skipped. It returns errStreamClosed
// when the reader ends cleanly.
func scanFrames(r io.Reader, emit func(frame)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), streamLineLimit)

	var cur frame
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(cur.data) > 0 {
				emit(cur)
			}
			cur = frame{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			cur.id = value
		case "event":
			cur.event = value
		case "data":
			cur.data = append(cur.data, value)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return errStreamClosed
}

func (s *EventStream) dispatch(f frame) bool {
	if f.event == sse.EventTypeConnected || f.event == sse.EventTypeKeepalive {
		return false
	}

	var evt StreamEvent
	if err := json.Unmarshal([]byte(strings.Join(f.data, "\n")), &evt); err != nil {
		slog.Warn(LogMsgStreamBadEvent, "error", err, "event_type", f.event)
		return false
	}
	if f.event != "" {
		evt.Type = f.event
	}
	if f.id != "" {
		evt.ID = f.id
	}

	s.mu.Lock()
	if evt.ID != "" {
		s.lastID = evt.ID
	}
	handlers := s.handlers[evt.Type]
	s.mu.Unlock()

	for _, h := range handlers {
		if err := h(evt); err != nil {
			slog.Error(LogMsgStreamHandlerError, "event_type", evt.Type, "error", err)
		}
	}
	return true
}
