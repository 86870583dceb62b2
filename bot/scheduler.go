package bot

import (
	"context"
	"sync"
	"time"

	"community-bot/monitoring"

	"go.uber.org/zap"
)

const (
	cooldownPruneInterval = 10 * time.Minute
	storeCheckInterval    = time.Minute
)

// Scheduler runs the bot's periodic housekeeping.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup

	cooldownTicker   *time.Ticker
	storeCheckTicker *time.Ticker
}

func NewScheduler(b *Bot) *Scheduler {
	return &Scheduler{bot: b, done: make(chan struct{})}
}

// Start begins all scheduled tasks.
func (s *Scheduler) Start() {
	s.cooldownTicker = time.NewTicker(cooldownPruneInterval)
	s.storeCheckTicker = time.NewTicker(storeCheckInterval)

	s.wg.Add(2)
	go s.loop(s.cooldownTicker, s.pruneCooldowns)
	go s.loop(s.storeCheckTicker, s.checkStores)
}

// Stop terminates all scheduled tasks and waits for them.
func (s *Scheduler) Stop() {
	close(s.done)
	if s.cooldownTicker != nil {
		s.cooldownTicker.Stop()
	}
	if s.storeCheckTicker != nil {
		s.storeCheckTicker.Stop()
	}
	s.wg.Wait()
	s.bot.Logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(t *time.Ticker, task func()) {
	defer s.wg.Done()
	for {
		select {
		case <-t.C:
			task()
		case <-s.done:
			return
		}
	}
}

func (s *Scheduler) pruneCooldowns() {
	s.bot.Cooldowns.Prune()
}

// checkStores pings the backend and refreshes the guild gauge. A failing ping is reported
// once per transition, not on every tick.
func (s *Scheduler) checkStores() {
	if st := s.bot.Session.State; st != nil {
		st.RLock()
		monitoring.TotalDiscordGuilds.Set(float64(len(st.Guilds)))
		st.RUnlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.bot.Stores.Ping(ctx)
	healthy := err == nil
	if healthy == s.bot.storesHealthy() {
		return
	}
	s.bot.setStoresHealthy(healthy)
	if !healthy {
		s.bot.Logger.Error("record store unreachable", zap.String("backend", s.bot.Stores.Backend()), zap.Error(err))
		s.bot.Audit.LogError("Database", "Health check", err.Error())
		return
	}
	s.bot.Logger.Info("record store reachable again", zap.String("backend", s.bot.Stores.Backend()))
	s.bot.Audit.LogInfo("Database", "Health check", "Connection restored.")
}
