package utility

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// systemStats is a snapshot of the host and the bot process.
type systemStats struct {
	Platform      string
	Kernel        string
	CPUCount      int
	CPUPercent    float64
	MemPercent    float64
	MemUsedMB     uint64
	MemTotalMB    uint64
	Goroutines    int
	Heartbeat     time.Duration
	Guilds        int
	Uptime        time.Duration
	Backend       string
	Degraded      bool
	ActivePrompts int
}

// collectSystemStats gathers host figures through gopsutil. Figures the host does not expose
// stay zero.
func collectSystemStats(ctx context.Context, s *discordgo.Session, b *bot.Bot) systemStats {
	st := systemStats{
		Goroutines:    runtime.NumGoroutine(),
		Heartbeat:     s.HeartbeatLatency(),
		Uptime:        time.Since(b.StartedAt),
		Backend:       b.Stores.Backend(),
		Degraded:      b.Stores.Degraded,
		ActivePrompts: b.Pending.Len(),
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		st.CPUCount = n
	}
	if p, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(p) > 0 {
		st.CPUPercent = p[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		st.MemPercent = vm.UsedPercent
		st.MemUsedMB = vm.Used / 1024 / 1024
		st.MemTotalMB = vm.Total / 1024 / 1024
	}
	if hi, err := host.InfoWithContext(ctx); err == nil {
		st.Platform = hi.Platform + " " + hi.PlatformVersion
		st.Kernel = hi.KernelVersion
	}
	if s.State != nil {
		s.State.RLock()
		st.Guilds = len(s.State.Guilds)
		s.State.RUnlock()
	}
	return st
}

func orUnknown(v string) string {
	if v == "" || v == " " {
		return "Unknown"
	}
	return v
}

func systemFields(st systemStats) []*discordgo.MessageEmbedField {
	backend := st.Backend
	if st.Degraded {
		backend += " (degraded)"
	}
	return []*discordgo.MessageEmbedField{
		{Name: "💻 OS", Value: orUnknown(st.Platform), Inline: true},
		{Name: "🔧 Kernel", Value: orUnknown(st.Kernel), Inline: true},
		{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
		{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", st.CPUCount), Inline: true},
		{Name: "🔥 CPU Usage", Value: fmt.Sprintf("%.1f%%", st.CPUPercent), Inline: true},
		{Name: "🧠 Memory", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", st.MemPercent, st.MemUsedMB, st.MemTotalMB), Inline: true},
		{Name: "⏱️ WebSocket Latency", Value: st.Heartbeat.Round(time.Millisecond).String(), Inline: true},
		{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", st.Goroutines), Inline: true},
		{Name: "🌍 Servers", Value: fmt.Sprintf("%d", st.Guilds), Inline: true},
		{Name: "🕒 Uptime", Value: utils.FormatDuration(st.Uptime), Inline: true},
		{Name: "🗃️ Storage", Value: backend, Inline: true},
		{Name: "⏳ Open Prompts", Value: fmt.Sprintf("%d", st.ActivePrompts), Inline: true},
	}
}

func handleBotInfo(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "acknowledge the command", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st := collectSystemStats(ctx, s, b)

	embed := b.Formatter.Create("", "System Information", "", utils.EmbedOptions{
		Fields: systemFields(st),
		Footer: "System monitor",
	})
	return utils.EditEmbed(s, i, embed)
}
