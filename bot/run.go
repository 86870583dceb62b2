package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Run connects to the gateway, registers commands and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.RefreshCommands(); err != nil {
		// the previous registration stays active
		b.Logger.Error("failed to register commands", zap.Error(err))
	}

	scheduler := NewScheduler(b)
	scheduler.Start()
	defer scheduler.Stop()

	b.Logger.Info("bot is now running, press CTRL-C to exit",
		zap.String("backend", b.Stores.Backend()),
		zap.Bool("degraded", b.Stores.Degraded))
	b.Audit.LogInfo("System", "Startup", "Bot has started successfully.")
	if b.Stores.Degraded {
		b.Audit.LogWarn("System", "Startup", "Database unavailable, running on in-memory stores. Data will not persist.")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	select {
	case <-sc:
	case <-ctx.Done():
	}
	return nil
}
