// Package commands implements the chat commands answered by the bot and the
// command endpoint of the HTTP API.
package commands

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codyseavey/archimago/internal/metrics"
)

// Prefix marks a message as a command.
const Prefix = "!"

var (
	cardTextPattern  = regexp.MustCompile(`\[\[!(.*?)\]\]`)
	cardImagePattern = regexp.MustCompile(`\[!(.*?)\]`)
)

// Request is one parsed command invocation.
type Request struct {
	ID        string   `json:"id"`
	Command   string   `json:"command"`
	Params    []string `json:"params"`
	IsPrivate bool     `json:"is_private"`
}

// Handler answers one command. User-facing failures are returned as the reply
// text; an error means the command could not run at all.
type Handler interface {
	Names() []string
	Summary() string
	Usage() string
	Run(ctx context.Context, req Request) (string, error)
}

// ParseCommand parses a "!name param..." message.
func ParseCommand(content string) (Request, bool) {
	if !strings.HasPrefix(content, Prefix) {
		return Request{}, false
	}

	fields := strings.Fields(content[len(Prefix):])
	if len(fields) == 0 {
		return Request{}, false
	}

	return Request{
		ID:      uuid.NewString(),
		Command: strings.ToLower(fields[0]),
		Params:  fields[1:],
	}, true
}

// ParseInline finds a card reference embedded in a message. "[[!name]]" asks
// for the card text and takes precedence over "[!name]", which asks for the
// card image.
func ParseInline(content string) (Request, bool) {
	if m := cardTextPattern.FindStringSubmatch(content); m != nil {
		return Request{ID: uuid.NewString(), Command: "card", Params: strings.Fields(m[1])}, true
	}
	if m := cardImagePattern.FindStringSubmatch(content); m != nil {
		return Request{ID: uuid.NewString(), Command: "cimg", Params: strings.Fields(m[1])}, true
	}
	return Request{}, false
}

// Parse returns every request carried by a message: the prefixed command
// first, then an inline card reference.
func Parse(content string, private bool) []Request {
	var reqs []Request
	if req, ok := ParseCommand(content); ok {
		reqs = append(reqs, req)
	}
	if req, ok := ParseInline(content); ok {
		reqs = append(reqs, req)
	}
	for i := range reqs {
		reqs[i].IsPrivate = private
	}
	return reqs
}

// Registry maps command names to handlers, keeping registration order for
// the help listing.
type Registry struct {
	handlers []Handler
	byName   map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Handler)}
}

// Register adds a handler under all of its names. A name that is already
// taken keeps its first handler.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
	for _, name := range h.Names() {
		if _, taken := r.byName[name]; taken {
			log.Printf("Warning: command name %s already registered", name)
			continue
		}
		r.byName[name] = h
	}
}

// Lookup returns the handler for a command name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[strings.ToLower(name)]
	return h, ok
}

// Handlers returns the handlers in registration order.
func (r *Registry) Handlers() []Handler {
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// Dispatch runs the handler for req. ok is false for unknown commands.
func (r *Registry) Dispatch(ctx context.Context, req Request) (reply string, ok bool) {
	h, found := r.Lookup(req.Command)
	if !found {
		metrics.CommandsTotal.WithLabelValues("unknown", "unknown").Inc()
		log.Printf("[%s] Failed to interpret command: %s", req.ID, req.Command)
		return "", false
	}

	name := h.Names()[0]
	start := time.Now()
	reply, err := h.Run(ctx, req)
	metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CommandsTotal.WithLabelValues(name, "error").Inc()
		log.Printf("[%s] Command %s failed: %v", req.ID, req.Command, err)
		return "Something went wrong while handling " + Prefix + req.Command + ", try again later.", true
	}

	metrics.CommandsTotal.WithLabelValues(name, "ok").Inc()
	return reply, true
}

// HandleMessage parses a chat message and returns the replies to send.
// Commands with nothing to say produce no reply.
func (r *Registry) HandleMessage(ctx context.Context, content string, private bool) []string {
	var replies []string
	for _, req := range Parse(content, private) {
		reply, ok := r.Dispatch(ctx, req)
		if ok && reply != "" {
			replies = append(replies, reply)
		}
	}
	return replies
}
