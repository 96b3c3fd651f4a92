// Package moderation registers the slash command front end for the
// moderation pipeline.
package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/discord/commands/core"
	"github.com/small-frappuccino/modcore/pkg/moderation"
)

// Commands wires the moderation slash commands to the pipeline service.
type Commands struct {
	service *moderation.Service
}

func NewCommands(service *moderation.Service) *Commands {
	return &Commands{service: service}
}

// Register adds all moderation commands to the router.
func (c *Commands) Register(router *core.CommandRouter) {
	router.RegisterCommand(core.NewSimpleCommand(
		"kick", "Kick a member from the server.",
		[]*discordgo.ApplicationCommandOption{
			userOption("member", "The member to kick", true),
			stringOption("reason", "Reason for the kick", false),
		},
		c.handleKick, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"ban", "Ban a member from the server.",
		[]*discordgo.ApplicationCommandOption{
			stringOption("user", "Mention or ID of the member to ban", true),
			stringOption("reason", "Reason for the ban", false),
		},
		c.handleBan, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"unban", "Unban a member by name#1234 or ID.",
		[]*discordgo.ApplicationCommandOption{
			stringOption("user_input", "Name#1234 or user ID of the banned user", true),
		},
		c.handleUnban, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"mute", "Mute a user, optionally for a duration (seconds).",
		[]*discordgo.ApplicationCommandOption{
			userOption("member", "The member to mute", true),
			intOption("duration", "Duration in seconds", false),
			stringOption("reason", "Reason for muting", false),
		},
		c.handleMute, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"unmute", "Unmute a muted member.",
		[]*discordgo.ApplicationCommandOption{
			userOption("member", "The member to unmute", true),
		},
		c.handleUnmute, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"warn", "Warn a user (with DM).",
		[]*discordgo.ApplicationCommandOption{
			userOption("member", "The user to warn", true),
			stringOption("reason", "The reason for the warning", false),
		},
		c.handleWarn, true, false,
	))

	router.RegisterCommand(core.NewSimpleCommand(
		"purge", "Delete bulk messages from a channel.",
		[]*discordgo.ApplicationCommandOption{
			intOption("amount", "Number of messages to delete (1-100)", true),
		},
		c.handlePurge, true, false,
	))
}

func (c *Commands) newRequest(ctx *core.Context, kind moderation.ActionKind) *moderation.Request {
	req := moderation.NewRequest(kind, ctx.GuildID, ctx.ChannelID, ctx.UserID, ctx.Permissions)
	return req
}

// invocation builds the pipeline invocation for a slash interaction.
// Interactions support ephemeral replies.
func (c *Commands) invocation(ctx *core.Context) *moderation.Invocation {
	return &moderation.Invocation{
		GuildID:            ctx.GuildID,
		ChannelID:          ctx.ChannelID,
		IssuerID:           ctx.UserID,
		EphemeralSupported: true,
		Replier: &interactionReplier{
			session:     ctx.Session,
			interaction: ctx.Interaction,
			channelID:   ctx.ChannelID,
		},
	}
}

func (c *Commands) handleKick(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionKick)
	req.Target = moderation.TargetRef{MemberID: opts.User("member")}
	if reason := opts.String("reason"); reason != "" {
		req.Reason = reason
	}

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handleBan(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	target := moderation.ParseUserRef(opts.String("user"))
	req := c.newRequest(ctx, moderation.ActionBan)
	req.Target = target
	if reason := opts.String("reason"); reason != "" {
		req.Reason = reason
	}

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handleUnban(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionUnban)
	req.Target = moderation.ParseBanListRef(opts.String("user_input"))

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handleMute(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionMute)
	req.Target = moderation.TargetRef{MemberID: opts.User("member")}
	if seconds := opts.Int("duration"); seconds > 0 {
		req.Duration = time.Duration(seconds) * time.Second
	}
	if reason := opts.String("reason"); reason != "" {
		req.Reason = reason
	}

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handleUnmute(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionUnmute)
	req.Target = moderation.TargetRef{MemberID: opts.User("member")}

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handleWarn(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionWarn)
	req.Target = moderation.TargetRef{MemberID: opts.User("member")}
	if reason := opts.String("reason"); reason != "" {
		req.Reason = reason
	}

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func (c *Commands) handlePurge(ctx *core.Context) error {
	opts := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	req := c.newRequest(ctx, moderation.ActionPurge)
	req.Count = int(opts.Int("amount"))

	c.service.Handle(req, c.invocation(ctx))
	return nil
}

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}
