// Package misc holds the non-moderation utility commands.
package misc

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/discord/commands/core"
	"github.com/small-frappuccino/modcore/pkg/theme"
)

// helpEntry is one line of the help embed.
type helpEntry struct {
	usage       string
	description string
}

var helpEntries = []helpEntry{
	{"ping", "Check if the bot is online"},
	{"kick @user [reason]", "Kick a user from the server"},
	{"ban @user [reason]", "Ban a user from the server"},
	{"unban [name#1234 or ID]", "Unban a user by tag or ID"},
	{"mute @user [seconds] [reason]", "Mute a user"},
	{"unmute @user", "Unmute a muted user"},
	{"warn @user [reason]", "Warn a user"},
	{"purge [1-100]", "Delete messages in bulk"},
}

// Commands provides the ping, help, and mutual commands.
type Commands struct{}

func NewCommands() *Commands {
	return &Commands{}
}

// Register adds the misc commands to the router.
func (c *Commands) Register(router *core.CommandRouter) {
	router.RegisterCommand(core.NewSimpleCommand(
		"ping", "Check if the bot is online.",
		nil, c.handlePing, false, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"help", "Display a list of moderation commands.",
		nil, c.handleHelp, false, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"mutual", "Check how many mutual servers you share with a user ID.",
		[]*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "user_id",
				Description: "The Discord ID of the user",
				Required:    true,
			},
		},
		c.handleMutual, false, false,
	))
}

func (c *Commands) handlePing(ctx *core.Context) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: "🏓 Pong!"},
	})
}

func (c *Commands) handleHelp(ctx *core.Context) error {
	embed := HelpEmbed("/")
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// HelpEmbed builds the command list embed for a given invocation prefix.
// Shared with the text prefix front end.
func HelpEmbed(prefix string) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(helpEntries))
	for _, entry := range helpEntries {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   prefix + entry.usage,
			Value:  entry.description,
			Inline: false,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       "🛠️ Moderation Commands",
		Description: "Here's a list of commands you can use:",
		Color:       theme.Warning(),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use commands responsibly.",
		},
	}
}

func (c *Commands) handleMutual(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)
	userID := opts.String("user_id")
	if !isDigits(userID) {
		return core.NewCommandError("❌ Please enter a valid user ID.", true)
	}

	var mutual []string
	for _, guild := range ctx.Session.State.Guilds {
		if m, err := ctx.Session.State.Member(guild.ID, userID); err == nil && m != nil {
			mutual = append(mutual, guild.Name)
			continue
		}
		if m, err := ctx.Session.GuildMember(guild.ID, userID); err == nil && m != nil {
			mutual = append(mutual, guild.Name)
		}
	}

	var content string
	switch count := len(mutual); {
	case count == 0:
		content = fmt.Sprintf("ℹ️ No mutual servers found with `%s`.", userID)
	case count > 10:
		content = fmt.Sprintf("🤝 **Mutual Servers:** %d\n🔹 **First 10:** %s... (+%d more)",
			count, strings.Join(mutual[:10], ", "), count-10)
	default:
		content = fmt.Sprintf("🤝 **Mutual Servers (%d):** %s", count, strings.Join(mutual, ", "))
	}

	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
