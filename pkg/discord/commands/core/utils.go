package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/small-frappuccino/modcore/pkg/files"
	"github.com/small-frappuccino/modcore/pkg/storage"
)

// OptionExtractor simplifies extraction of slash command options.
type OptionExtractor struct {
	options []*discordgo.ApplicationCommandInteractionDataOption
}

func NewOptionExtractor(options []*discordgo.ApplicationCommandInteractionDataOption) *OptionExtractor {
	return &OptionExtractor{options: options}
}

// String extracts a string option by name.
func (e *OptionExtractor) String(name string) string {
	for _, opt := range e.options {
		if opt.Name == name {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

// StringRequired extracts a required string option.
func (e *OptionExtractor) StringRequired(name string) (string, error) {
	value := e.String(name)
	if value == "" {
		return "", NewValidationError(name, fmt.Sprintf("Option '%s' is required", name))
	}
	return value, nil
}

// Int extracts an integer option by name.
func (e *OptionExtractor) Int(name string) int64 {
	for _, opt := range e.options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return 0
}

// User extracts a user option's ID by name.
func (e *OptionExtractor) User(name string) string {
	for _, opt := range e.options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			if u, ok := opt.Value.(string); ok {
				return u
			}
		}
	}
	return ""
}

// Channel extracts a channel option's ID by name.
func (e *OptionExtractor) Channel(name string) string {
	for _, opt := range e.options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			if c, ok := opt.Value.(string); ok {
				return c
			}
		}
	}
	return ""
}

// HasOption checks whether an option is present.
func (e *OptionExtractor) HasOption(name string) bool {
	for _, opt := range e.options {
		if opt.Name == name {
			return true
		}
	}
	return false
}

// PermissionChecker resolves guild-level access for management commands:
// the guild owner always has access, plus any member holding one of the
// configured allowed roles.
type PermissionChecker struct {
	session *discordgo.Session
	config  *files.ConfigManager
	store   *storage.Store
}

func NewPermissionChecker(session *discordgo.Session, config *files.ConfigManager) *PermissionChecker {
	return &PermissionChecker{session: session, config: config}
}

// SetStore attaches the persistent owner cache.
func (pc *PermissionChecker) SetStore(store *storage.Store) {
	pc.store = store
}

// getOwnerID resolves the guild owner via state, then the store, then REST,
// writing back on REST hits.
func (pc *PermissionChecker) getOwnerID(guildID string) (string, bool) {
	if pc.session != nil && pc.session.State != nil {
		if g, _ := pc.session.State.Guild(guildID); g != nil && g.OwnerID != "" {
			return g.OwnerID, true
		}
	}
	if pc.store != nil {
		if oid, err := pc.store.GetGuildOwnerID(guildID); err == nil {
			return oid, true
		} else if !errors.Is(err, storage.ErrNotFound) {
			return "", false
		}
	}
	if pc.session != nil {
		if g, err := pc.session.Guild(guildID); err == nil && g != nil {
			if pc.store != nil && g.OwnerID != "" {
				_ = pc.store.SetGuildOwnerID(guildID, g.OwnerID)
			}
			return g.OwnerID, true
		}
	}
	return "", false
}

func (pc *PermissionChecker) getMember(guildID, userID string) (*discordgo.Member, bool) {
	if pc.session != nil && pc.session.State != nil {
		if m, _ := pc.session.State.Member(guildID, userID); m != nil {
			return m, true
		}
	}
	if pc.session != nil {
		if m, err := pc.session.GuildMember(guildID, userID); err == nil && m != nil {
			return m, true
		}
	}
	return nil, false
}

// HasManagerAccess checks whether the user may run management commands.
func (pc *PermissionChecker) HasManagerAccess(guildID, userID string) bool {
	if guildID == "" {
		return false
	}
	guildConfig := pc.config.GuildConfig(guildID)

	ownerID, ok := pc.getOwnerID(guildID)
	isOwner := ok && ownerID == userID

	if guildConfig == nil || len(guildConfig.AllowedRoles) == 0 {
		return isOwner
	}
	if isOwner {
		return true
	}

	member, ok := pc.getMember(guildID, userID)
	if !ok || member == nil {
		return false
	}
	for _, userRole := range member.Roles {
		if slices.Contains(guildConfig.AllowedRoles, userRole) {
			return true
		}
	}
	return false
}

// IsOwner checks whether the user is the guild owner.
func (pc *PermissionChecker) IsOwner(guildID, userID string) bool {
	if guildID == "" {
		return false
	}
	ownerID, ok := pc.getOwnerID(guildID)
	return ok && ownerID == userID
}

// CompareCommands reports whether two commands are semantically equal. The
// JSON round trip normalizes option defaults Discord fills in.
func CompareCommands(a, b *discordgo.ApplicationCommand) bool {
	ca := struct {
		Name        string                                `json:"name"`
		Description string                                `json:"description"`
		Options     []*discordgo.ApplicationCommandOption `json:"options"`
	}{a.Name, a.Description, a.Options}
	cb := struct {
		Name        string                                `json:"name"`
		Description string                                `json:"description"`
		Options     []*discordgo.ApplicationCommandOption `json:"options"`
	}{b.Name, b.Description, b.Options}
	ba, _ := json.Marshal(ca)
	bb, _ := json.Marshal(cb)
	return string(ba) == string(bb)
}
