package utils

import (
	"github.com/bwmarrin/discordgo"
)

// Options indexes slash command options by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// CommandOptions returns the options of a command. For a command with a subcommand it returns
// the subcommand name and the subcommand's own options.
func CommandOptions(i *discordgo.InteractionCreate) (sub string, opts Options) {
	data := i.ApplicationCommandData()
	list := data.Options
	if len(list) > 0 && (list[0].Type == discordgo.ApplicationCommandOptionSubCommand ||
		list[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup) {
		sub = list[0].Name
		list = list[0].Options
	}
	opts = make(Options, len(list))
	for _, o := range list {
		opts[o.Name] = o
	}
	return sub, opts
}

// String returns the option value or def when the option was not given.
func (o Options) String(name, def string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return def
}

func (o Options) Int(name string, def int64) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return def
}

func (o Options) Bool(name string, def bool) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return def
}

// User resolves a user option. It returns nil when the option is missing.
func (o Options) User(s *discordgo.Session, name string) *discordgo.User {
	if opt, ok := o[name]; ok {
		return opt.UserValue(s)
	}
	return nil
}

// ID returns the raw snowflake of a user, channel or role option.
func (o Options) ID(name string) string {
	if opt, ok := o[name]; ok {
		if v, ok := opt.Value.(string); ok {
			return v
		}
	}
	return ""
}

// Channel returns the resolved channel of a channel option, falling back to a bare channel
// carrying only the id.
func (o Options) Channel(i *discordgo.InteractionCreate, name string) *discordgo.Channel {
	id := o.ID(name)
	if id == "" {
		return nil
	}
	if r := i.ApplicationCommandData().Resolved; r != nil {
		if ch, ok := r.Channels[id]; ok {
			return ch
		}
	}
	return &discordgo.Channel{ID: id}
}

// Focused returns the option the user is typing in during autocomplete.
func Focused(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Focused {
			return o
		}
		if len(o.Options) > 0 {
			if f := Focused(o.Options); f != nil {
				return f
			}
		}
	}
	return nil
}

// ModalValues collects the text inputs of a submitted modal by custom id.
func ModalValues(i *discordgo.InteractionCreate) map[string]string {
	values := make(map[string]string)
	for _, row := range i.ModalSubmitData().Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok {
				values[ti.CustomID] = ti.Value
			}
		}
	}
	return values
}

// TextInputRow wraps a single text input in an action row, as modals require.
func TextInputRow(input discordgo.TextInput) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{input}}
}
