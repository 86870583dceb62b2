package bot

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"community-bot/commands"
	"community-bot/handlers/router"
	"community-bot/model"
	"community-bot/ticketing"
	"community-bot/utils"
	"community-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CommandHandler answers one slash command. A returned error is reported to the user by the
// dispatch boundary.
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate) error

type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	Logger             *zap.Logger
	Stores             *database.Stores
	Tickets            *ticketing.Workflow
	Formatter          *utils.Formatter
	Cooldowns          *utils.Cooldowns
	Pending            *utils.Pending
	Audit              *utils.ChannelLogger
	Router             *router.Router
	CommandHandlers    map[string]CommandHandler
	RegisteredCommands []*discordgo.ApplicationCommand
	StartedAt          time.Time

	storesDown atomic.Bool
	closeOnce  sync.Once
	done       chan struct{}
}

func New(cfg *model.Config, stores *database.Stores, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMembers

	b := &Bot{
		Session:         dg,
		Config:          cfg,
		Logger:          logger,
		Stores:          stores,
		Tickets:         ticketing.NewWorkflow(stores, cfg.Tickets, logger),
		Formatter:       utils.NewFormatter(cfg.Colors),
		Cooldowns:       utils.NewCooldowns(),
		Pending:         utils.NewPending(cfg.ConfirmTimeout),
		Audit:           &utils.ChannelLogger{Session: dg, SystemChannelID: cfg.LogChannelID, Logger: logger},
		Router:          router.New(logger),
		CommandHandlers: make(map[string]CommandHandler),
		StartedAt:       time.Now(),
		done:            make(chan struct{}),
	}
	return b, nil
}

// Done is closed when the bot shuts down.
func (b *Bot) Done() <-chan struct{} {
	return b.done
}

func (b *Bot) storesHealthy() bool {
	return !b.storesDown.Load()
}

func (b *Bot) setStoresHealthy(ok bool) {
	b.storesDown.Store(!ok)
}

// Close stops background work, the gateway connection and the stores. It is safe to call
// more than once.
func (b *Bot) Close() {
	b.closeOnce.Do(func() {
		b.Logger.Info("gracefully shutting down")
		close(b.done)
		if err := b.Session.Close(); err != nil {
			b.Logger.Warn("failed to close discord session", zap.Error(err))
		}
		if err := b.Stores.Close(); err != nil {
			b.Logger.Warn("failed to close stores", zap.Error(err))
		}
	})
}

// RefreshCommands overwrites the application commands, in GUILD_ID when set and globally
// otherwise.
func (b *Bot) RefreshCommands() error {
	cmds := commands.GenerateCommands()
	scope := b.Config.GuildID
	b.Logger.Info("registering commands", zap.Int("count", len(cmds)), zap.String("guild_id", scope))

	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Config.AppID, scope, cmds)
	if err != nil {
		return fmt.Errorf("cannot update commands: %w", err)
	}
	b.RegisteredCommands = registered
	return nil
}

// CooldownFor returns the cooldown window of a command category.
func (b *Bot) CooldownFor(category string) time.Duration {
	seconds := b.Config.Cooldowns.Default
	switch category {
	case commands.CategoryFun:
		seconds = b.Config.Cooldowns.Fun
	case commands.CategoryModeration:
		seconds = b.Config.Cooldowns.Moderation
	}
	return time.Duration(seconds) * time.Second
}

// Command adapts a handler that needs the bot into a CommandHandler.
func (b *Bot) Command(h func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) error) CommandHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		return h(s, i, b)
	}
}

// Component adapts a handler that needs the bot into a router handler.
func (b *Bot) Component(h func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot, args []string) error) router.HandlerFunc {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, args []string) error {
		return h(s, i, b, args)
	}
}
