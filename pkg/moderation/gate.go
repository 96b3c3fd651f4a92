package moderation

import "github.com/bwmarrin/discordgo"

// requiredPermission maps each action kind to the single permission bit the
// issuer must hold. Static for the process lifetime.
var requiredPermission = map[ActionKind]int64{
	ActionKick:   discordgo.PermissionKickMembers,
	ActionBan:    discordgo.PermissionBanMembers,
	ActionUnban:  discordgo.PermissionBanMembers,
	ActionMute:   discordgo.PermissionManageRoles,
	ActionUnmute: discordgo.PermissionManageRoles,
	ActionWarn:   discordgo.PermissionManageMessages,
	ActionPurge:  discordgo.PermissionManageMessages,
}

// RequiredPermission returns the permission bit an action kind requires.
func RequiredPermission(kind ActionKind) int64 {
	return requiredPermission[kind]
}

// AuthorizationError reports that the issuer lacks the permission an action
// requires. It is distinct from configuration errors so users can tell "you
// can't" apart from "the guild is not set up for this".
type AuthorizationError struct {
	Kind ActionKind
}

func (e *AuthorizationError) Error() string {
	return "missing permission for " + e.Kind.String()
}

// DenialMessage returns the fixed user-facing denial text for the action.
func (e *AuthorizationError) DenialMessage() string {
	switch e.Kind {
	case ActionWarn:
		return "❌ You don't have permission to warn users."
	case ActionPurge:
		return "❌ You don't have permission to manage messages."
	default:
		return "❌ You don't have permission to use this command."
	}
}

// Authorize checks the issuer's permission set against the action's
// requirement. Pure function of the request; no platform calls.
func Authorize(req *Request) *AuthorizationError {
	need := requiredPermission[req.Kind]
	if req.IssuerPermissions&need == need {
		return nil
	}
	return &AuthorizationError{Kind: req.Kind}
}
