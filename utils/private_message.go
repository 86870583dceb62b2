package utils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SendPrivateEmbedMessage sends an embed to a user's DM channel. Users who block DMs from
// server members make this fail with a REST error.
func SendPrivateEmbedMessage(s *discordgo.Session, userID string, embed *discordgo.MessageEmbed) error {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open dm channel with %s: %w", userID, err)
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("failed to send dm to %s: %w", userID, err)
	}
	return nil
}
