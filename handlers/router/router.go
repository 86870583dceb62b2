// Package router dispatches component and modal interactions by their custom id.
//
// Custom ids have the form domain_action_arg1_arg2. Handlers are registered per
// (domain, action, kind) at startup; anything unregistered is ignored.
package router

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Kind is the interaction surface a custom id belongs to.
type Kind int

const (
	Button Kind = iota
	SelectMenu
	Modal
)

func (k Kind) String() string {
	switch k {
	case Button:
		return "button"
	case SelectMenu:
		return "select_menu"
	case Modal:
		return "modal"
	default:
		return "unknown"
	}
}

// HandlerFunc handles one routed interaction. args are the id tokens after domain and action.
type HandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate, args []string) error

// ID is a parsed custom id.
type ID struct {
	Domain string
	Action string
	Args   []string
}

// Parse splits a custom id on underscores. Trailing empty tokens are dropped, so
// "ticket_claim_" has no args. ok is false when domain or action is missing.
func Parse(customID string) (id ID, ok bool) {
	parts := strings.Split(customID, "_")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ID{}, false
	}
	return ID{Domain: parts[0], Action: parts[1], Args: parts[2:]}, true
}

type routeKey struct {
	domain string
	action string
	kind   Kind
}

// Route is a registered handler together with what it answers to.
type Route struct {
	Domain  string
	Action  string
	Kind    Kind
	Handler HandlerFunc
}

type Router struct {
	mu     sync.RWMutex
	routes map[routeKey]HandlerFunc
	logger *zap.Logger
}

func New(logger *zap.Logger) *Router {
	return &Router{routes: make(map[routeKey]HandlerFunc), logger: logger}
}

// Handle registers h. A later registration for the same key replaces the earlier one.
func (r *Router) Handle(domain, action string, kind Kind, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[routeKey{domain: domain, action: action, kind: kind}] = h
}

// HandleAll registers a batch of routes.
func (r *Router) HandleAll(routes []Route) {
	for _, rt := range routes {
		r.Handle(rt.Domain, rt.Action, rt.Kind, rt.Handler)
	}
}

// Lookup returns the handler for a custom id and kind.
func (r *Router) Lookup(customID string, kind Kind) (HandlerFunc, []string, bool) {
	id, ok := Parse(customID)
	if !ok {
		return nil, nil, false
	}
	r.mu.RLock()
	h, ok := r.routes[routeKey{domain: id.Domain, action: id.Action, kind: kind}]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}
	return h, id.Args, true
}

// KindOf derives the kind and custom id of a component or modal interaction.
func KindOf(i *discordgo.InteractionCreate) (Kind, string, bool) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if data.ComponentType == discordgo.ButtonComponent {
			return Button, data.CustomID, true
		}
		return SelectMenu, data.CustomID, true
	case discordgo.InteractionModalSubmit:
		return Modal, i.ModalSubmitData().CustomID, true
	default:
		return 0, "", false
	}
}

// Dispatch runs the handler registered for the interaction. handled is false, with a nil
// error, when nothing matched.
func (r *Router) Dispatch(s *discordgo.Session, i *discordgo.InteractionCreate) (handled bool, err error) {
	kind, customID, ok := KindOf(i)
	if !ok {
		return false, nil
	}
	h, args, ok := r.Lookup(customID, kind)
	if !ok {
		r.logger.Debug("no route for interaction",
			zap.String("custom_id", customID),
			zap.Stringer("kind", kind))
		return false, nil
	}
	return true, h(s, i, args)
}
