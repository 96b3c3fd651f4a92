package core

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/files"
	"github.com/small-frappuccino/modcore/pkg/log"
)

// CommandRouter routes interactions to registered commands.
type CommandRouter struct {
	registry       *CommandRegistry
	contextBuilder *ContextBuilder
	responder      *ResponseManager
	permChecker    *PermissionChecker
}

func NewCommandRouter(session *discordgo.Session, configManager *files.ConfigManager) *CommandRouter {
	registry := NewCommandRegistry()
	responder := NewResponseManager(session)
	permChecker := NewPermissionChecker(session, configManager)
	contextBuilder := NewContextBuilder(session, configManager, permChecker)

	return &CommandRouter{
		registry:       registry,
		contextBuilder: contextBuilder,
		responder:      responder,
		permChecker:    permChecker,
	}
}

func (cr *CommandRouter) RegisterCommand(cmd Command) {
	cr.registry.Register(cmd)
}

// HandleInteraction dispatches slash command interactions.
func (cr *CommandRouter) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !IsSlashCommandInteraction(i) {
		return
	}
	cr.handleSlashCommand(i)
}

func (cr *CommandRouter) handleSlashCommand(i *discordgo.InteractionCreate) {
	ctx := cr.contextBuilder.BuildContext(i)
	defer cr.responder.Forget(i)
	commandName := i.ApplicationCommandData().Name

	cmd, exists := cr.registry.GetCommand(commandName)
	if !exists {
		log.DiscordLogger().Error("command not found", "command", commandName)
		cr.responder.Error(i, "Command not found")
		return
	}

	if cmd.RequiresGuild() && ctx.GuildID == "" {
		cr.responder.Ephemeral(i, "This command can only be used in a server")
		return
	}

	if cmd.RequiresManagerRole() && !cr.permChecker.HasManagerAccess(ctx.GuildID, ctx.UserID) {
		log.DiscordLogger().Warn("manager command denied",
			"command", commandName,
			"guild_id", ctx.GuildID,
			"user_id", ctx.UserID)
		cr.responder.Ephemeral(i, "You do not have permission to use this command")
		return
	}

	log.DiscordLogger().Debug("executing command",
		"command", commandName,
		"guild_id", ctx.GuildID,
		"user_id", ctx.UserID)

	if err := cmd.Handle(ctx); err != nil {
		log.DiscordLogger().Error("command execution failed",
			"command", commandName,
			"error", err)

		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			if cmdErr.Ephemeral {
				cr.responder.Respond(i, cmdErr.Message, true)
			} else {
				cr.responder.Respond(i, cmdErr.Message, false)
			}
			return
		}
		cr.responder.Error(i, "An error occurred while executing the command")
	}
}

func (cr *CommandRouter) GetSession() *discordgo.Session {
	return cr.contextBuilder.session
}

func (cr *CommandRouter) GetConfigManager() *files.ConfigManager {
	return cr.contextBuilder.configManager
}

func (cr *CommandRouter) GetRegistry() *CommandRegistry {
	return cr.registry
}

func (cr *CommandRouter) GetResponder() *ResponseManager {
	return cr.responder
}

func (cr *CommandRouter) GetPermissionChecker() *PermissionChecker {
	return cr.permChecker
}

// CommandManager owns command registration and synchronization with Discord.
type CommandManager struct {
	session *discordgo.Session
	router  *CommandRouter
}

func NewCommandManager(session *discordgo.Session, configManager *files.ConfigManager) *CommandManager {
	return &CommandManager{
		session: session,
		router:  NewCommandRouter(session, configManager),
	}
}

func (cm *CommandManager) GetRouter() *CommandRouter {
	return cm.router
}

// SetupCommands installs the interaction handler and incrementally syncs the
// registered commands with Discord: create missing ones, update changed
// ones, and delete orphans.
func (cm *CommandManager) SetupCommands() error {
	cm.session.AddHandler(cm.router.HandleInteraction)

	registered, err := cm.session.ApplicationCommands(cm.session.State.User.ID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch registered commands: %w", err)
	}

	regByName := make(map[string]*discordgo.ApplicationCommand, len(registered))
	for _, rc := range registered {
		regByName[rc.Name] = rc
	}

	codeCommands := cm.router.registry.GetAllCommands()

	created, updated, unchanged := 0, 0, 0
	for name, cmd := range codeCommands {
		desired := &discordgo.ApplicationCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Options:     cmd.Options(),
		}

		if existing, ok := regByName[name]; ok {
			if CompareCommands(existing, desired) {
				unchanged++
				continue
			}
			if _, err := cm.session.ApplicationCommandEdit(cm.session.State.User.ID, "", existing.ID, desired); err != nil {
				return fmt.Errorf("error updating command '%s': %w", name, err)
			}
			log.DiscordLogger().Info("command updated", "command", name)
			updated++
		} else {
			if _, err := cm.session.ApplicationCommandCreate(cm.session.State.User.ID, "", desired); err != nil {
				return fmt.Errorf("error creating command '%s': %w", name, err)
			}
			log.DiscordLogger().Info("command created", "command", name)
			created++
		}
	}

	deleted := 0
	for _, rc := range registered {
		if _, exists := codeCommands[rc.Name]; !exists {
			if err := cm.session.ApplicationCommandDelete(cm.session.State.User.ID, "", rc.ID); err != nil {
				log.DiscordLogger().Warn("error removing orphan command",
					"command", rc.Name,
					"error", err)
				continue
			}
			log.DiscordLogger().Info("orphan command removed", "command", rc.Name)
			deleted++
		}
	}

	log.DiscordLogger().Info("command synchronization completed",
		"created", created,
		"updated", updated,
		"deleted", deleted,
		"unchanged", unchanged,
		"total", len(codeCommands))

	return nil
}

// SimpleCommand implements Command with plain values and a handler func.
type SimpleCommand struct {
	name            string
	description     string
	options         []*discordgo.ApplicationCommandOption
	handler         func(ctx *Context) error
	requiresGuild   bool
	requiresManager bool
}

func NewSimpleCommand(
	name, description string,
	options []*discordgo.ApplicationCommandOption,
	handler func(ctx *Context) error,
	requiresGuild, requiresManager bool,
) *SimpleCommand {
	return &SimpleCommand{
		name:            name,
		description:     description,
		options:         options,
		handler:         handler,
		requiresGuild:   requiresGuild,
		requiresManager: requiresManager,
	}
}

func (sc *SimpleCommand) Name() string        { return sc.name }
func (sc *SimpleCommand) Description() string { return sc.description }
func (sc *SimpleCommand) Options() []*discordgo.ApplicationCommandOption {
	return sc.options
}
func (sc *SimpleCommand) Handle(ctx *Context) error { return sc.handler(ctx) }
func (sc *SimpleCommand) RequiresGuild() bool       { return sc.requiresGuild }
func (sc *SimpleCommand) RequiresManagerRole() bool { return sc.requiresManager }
