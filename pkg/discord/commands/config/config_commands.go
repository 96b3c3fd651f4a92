// Package config registers the guild settings command.
package config

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/discord/commands/core"
	"github.com/small-frappuccino/modcore/pkg/files"
)

// Commands manages the per-guild bot settings.
type Commands struct{}

func NewCommands() *Commands {
	return &Commands{}
}

// Register adds the settings command to the router. Restricted to the guild
// owner and configured manager roles.
func (c *Commands) Register(router *core.CommandRouter) {
	router.RegisterCommand(core.NewSimpleCommand(
		"settings", "Configure the bot for this server.",
		[]*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "mod_log_channel",
				Description: "Channel that receives a copy of moderation outcomes",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "command_channel",
				Description: "Only channel where text-prefixed commands are accepted",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "muted_role",
				Description: "Name of the role applied by /mute (default: Muted)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "allowed_roles",
				Description: "Comma-separated role IDs allowed to change settings",
				Required:    false,
			},
		},
		c.handleSettings, true, true,
	))
}

func (c *Commands) handleSettings(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	cfg := ctx.GuildConfig
	if cfg == nil {
		cfg = &files.GuildConfig{GuildID: ctx.GuildID}
	}

	var changed []string
	if channelID := opts.Channel("mod_log_channel"); channelID != "" {
		cfg.ModLogChannelID = channelID
		changed = append(changed, fmt.Sprintf("mod log channel → <#%s>", channelID))
	}
	if channelID := opts.Channel("command_channel"); channelID != "" {
		cfg.CommandChannelID = channelID
		changed = append(changed, fmt.Sprintf("command channel → <#%s>", channelID))
	}
	if role := opts.String("muted_role"); role != "" {
		cfg.MutedRoleName = role
		changed = append(changed, fmt.Sprintf("muted role → `%s`", role))
	}
	if opts.HasOption("allowed_roles") {
		cfg.AllowedRoles = splitRoleList(opts.String("allowed_roles"))
		changed = append(changed, fmt.Sprintf("allowed roles → %d entries", len(cfg.AllowedRoles)))
	}

	if len(changed) == 0 {
		return c.showSettings(ctx, cfg)
	}

	if err := ctx.Config.AddGuildConfig(*cfg); err != nil {
		return core.NewCommandError("Failed to save settings", true)
	}

	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "✅ Settings updated: " + strings.Join(changed, ", "),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (c *Commands) showSettings(ctx *core.Context, cfg *files.GuildConfig) error {
	modLog := "not set"
	if cfg.ModLogChannelID != "" {
		modLog = "<#" + cfg.ModLogChannelID + ">"
	}
	content := fmt.Sprintf(
		"ℹ️ Current settings:\n• Mod log channel: %s\n• Muted role: `%s`\n• Allowed roles: %d",
		modLog, cfg.EffectiveMutedRoleName(), len(cfg.AllowedRoles))

	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func splitRoleList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
