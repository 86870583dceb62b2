package ticketing

import (
	"context"
	"fmt"

	"community-bot/model"
	"community-bot/utils"
)

// CodeNotSetUp is returned when a guild has never run ticket setup.
const CodeNotSetUp = "not_set_up"

// DefaultWelcomeMessage is posted in new tickets when neither the guild nor the config sets one.
const DefaultWelcomeMessage = "Thank you for creating a ticket. Support staff will be with you shortly."

// DefaultTicketTypes are offered on the panel when nothing else is configured.
var DefaultTicketTypes = []model.TicketType{
	{Label: "General Support", Emoji: "🔧"},
	{Label: "Report Issue", Emoji: "⚠️"},
	{Label: "Feature Request", Emoji: "💡"},
}

func errNotSetUp() error {
	return utils.NewValidationError(CodeNotSetUp, "Ticket System Not Set Up", "Please run `/ticket-setup` first to configure the ticket system.")
}

// Settings returns the guild's ticket settings with defaults applied, or nil when the guild
// has not been set up.
func (w *Workflow) Settings(ctx context.Context, guildID string) (*model.TicketSettings, error) {
	s, err := w.settings.Get(ctx, guildID)
	if err != nil {
		return nil, utils.NewBackendError("load ticket settings", err)
	}
	if s == nil {
		return nil, nil
	}
	w.applyDefaults(s)
	return s, nil
}

// RequireSettings is Settings that fails with not_set_up instead of returning nil.
func (w *Workflow) RequireSettings(ctx context.Context, guildID string) (*model.TicketSettings, error) {
	s, err := w.Settings(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNotSetUp()
	}
	return s, nil
}

func (w *Workflow) applyDefaults(s *model.TicketSettings) {
	if s.CategoryID == "" {
		s.CategoryID = w.defaults.Category
	}
	if s.LogsChannel == "" {
		s.LogsChannel = w.defaults.LogsChannel
	}
	if s.WelcomeMessage == "" {
		s.WelcomeMessage = w.defaults.WelcomeMessage
	}
	if s.WelcomeMessage == "" {
		s.WelcomeMessage = DefaultWelcomeMessage
	}
	if len(s.TicketTypes) == 0 {
		s.TicketTypes = append([]model.TicketType(nil), w.defaults.Types...)
	}
	if len(s.TicketTypes) == 0 {
		s.TicketTypes = append([]model.TicketType(nil), DefaultTicketTypes...)
	}
}

// SetupRequest is the input of the ticket-setup command.
type SetupRequest struct {
	GuildID      string
	CategoryID   string
	LogsChannel  string
	StaffRoleIDs []string
}

// Setup creates the guild's settings or merges the given fields into them. Empty fields and
// the posted panel are left as they are.
func (w *Workflow) Setup(ctx context.Context, req SetupRequest) (*model.TicketSettings, error) {
	cur, err := w.settings.Get(ctx, req.GuildID)
	if err != nil {
		return nil, utils.NewBackendError("load ticket settings", err)
	}
	next := &model.TicketSettings{GuildID: req.GuildID}
	if cur != nil {
		next = cur
	}
	if req.CategoryID != "" {
		next.CategoryID = req.CategoryID
	}
	if req.LogsChannel != "" {
		next.LogsChannel = req.LogsChannel
	}
	if len(req.StaffRoleIDs) > 0 {
		next.StaffRoleIDs = req.StaffRoleIDs
	}

	saved, err := w.settings.Upsert(ctx, next)
	if err != nil {
		return nil, utils.NewBackendError("save ticket settings", err)
	}
	w.applyDefaults(saved)
	return saved, nil
}

// SetPanel stores where the ticket panel was posted.
func (w *Workflow) SetPanel(ctx context.Context, guildID, channelID, messageID string) error {
	return w.updateSettings(ctx, guildID, func(s *model.TicketSettings) {
		s.PanelChannelID = channelID
		s.PanelMessageID = messageID
	})
}

// SetLogsChannel changes the channel ticket events are mirrored to.
func (w *Workflow) SetLogsChannel(ctx context.Context, guildID, channelID string) error {
	return w.updateSettings(ctx, guildID, func(s *model.TicketSettings) {
		s.LogsChannel = channelID
	})
}

// SetCategory moves new tickets to another category and records the change.
func (w *Workflow) SetCategory(ctx context.Context, guildID, categoryID, actorID string) error {
	err := w.updateSettings(ctx, guildID, func(s *model.TicketSettings) {
		s.CategoryID = categoryID
	})
	if err != nil {
		return err
	}
	w.appendLog(ctx, &model.Ticket{GuildID: guildID}, model.ActionCategory, actorID, fmt.Sprintf("Ticket category set to <#%s>", categoryID))
	return nil
}

func (w *Workflow) updateSettings(ctx context.Context, guildID string, apply func(s *model.TicketSettings)) error {
	cur, err := w.settings.Get(ctx, guildID)
	if err != nil {
		return utils.NewBackendError("load ticket settings", err)
	}
	if cur == nil {
		return errNotSetUp()
	}
	apply(cur)
	if _, err := w.settings.Upsert(ctx, cur); err != nil {
		return utils.NewBackendError("save ticket settings", err)
	}
	return nil
}
