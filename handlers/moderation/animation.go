package moderation

import (
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	figure "github.com/common-nighthawk/go-figure"
	"go.uber.org/zap"
)

const (
	frameDelay  = 1500 * time.Millisecond
	finishDelay = 2 * time.Second
)

type animation struct {
	frames   []string
	complete string
}

func codeBlock(s string) string {
	return "```\n" + strings.TrimRight(s, "\n ") + "\n```"
}

func banner(text, font string) string {
	return codeBlock(figure.NewFigure(text, font, false).String())
}

// animationFor returns the frames of an animation type. The frames are plain message
// content, each small enough for a single Discord message.
func animationFor(kind string) (animation, bool) {
	switch kind {
	case "nuclear":
		return animation{
			frames: []string{
				codeBlock("🔴 NUCLEAR LAUNCH DETECTED - 3"),
				codeBlock("🔴 NUCLEAR LAUNCH DETECTED - 2"),
				codeBlock("🔴 NUCLEAR LAUNCH DETECTED - 1"),
				banner("NUKE", "doom"),
				banner("BOOM", "big"),
				codeBlock("☢️ The fallout has settled."),
			},
			complete: "Nuclear explosion animation complete! 💥",
		}, true
	case "boom":
		return animation{
			frames: []string{
				codeBlock("💣 *tick*"),
				codeBlock("💣 *tick* *tick*"),
				banner("BOOM", "doom"),
				codeBlock("💥💥💥"),
			},
			complete: "Explosion animation complete! 💣",
		}, true
	case "thanos":
		return animation{
			frames: []string{
				codeBlock("🧤 *snap*"),
				banner("SNAP", "small"),
				codeBlock("Half of all life has been snapped away...\nPerfectly balanced, as all things should be."),
			},
			complete: "Perfectly balanced, as all things should be. 🧤",
		}, true
	}
	return animation{}, false
}

func handleNukeAnimation(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	anim, ok := animationFor(opts.String("type", ""))
	if !ok {
		return utils.NewValidationError("unknown_animation", "Animation Error", "The selected animation type was not found.")
	}
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Animation Error", "defer the animation", err)
	}

	for n, frame := range anim.frames {
		if n > 0 {
			time.Sleep(frameDelay)
		}
		if err := utils.EditContent(s, i, frame); err != nil {
			// the message was probably deleted mid-animation
			b.Logger.Debug("nuke animation stopped", zap.String("channel_id", i.ChannelID), zap.Error(err))
			return nil
		}
	}

	time.Sleep(finishDelay)
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{b.Formatter.Success("Animation Complete", anim.complete)},
	})
	if err != nil {
		b.Logger.Debug("failed to post animation completion", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
	return nil
}
