package moderation

import (
	"errors"
	"fmt"

	"github.com/small-frappuccino/modcore/pkg/errutil"
	"github.com/small-frappuccino/modcore/pkg/files"
	"github.com/small-frappuccino/modcore/pkg/log"
)

// Executor performs the single external side effect of a validated request
// and classifies the result. One call per request; the caller reports the
// returned Outcome exactly once.
type Executor struct {
	client    CommunityClient
	notifier  *Notifier
	scheduler *Scheduler

	// MutedRoleName resolves the name of a guild's muted role. Defaults
	// to the standard name when nil or returning empty.
	MutedRoleName func(guildID string) string
}

// NewExecutor creates an Executor over the given collaborators.
func NewExecutor(client CommunityClient, notifier *Notifier, scheduler *Scheduler) *Executor {
	return &Executor{
		client:    client,
		notifier:  notifier,
		scheduler: scheduler,
	}
}

// Scheduler exposes the timed sanction scheduler, used by explicit unmute
// cancellation paths and tests.
func (e *Executor) Scheduler() *Scheduler {
	return e.scheduler
}

// Execute runs the request's action. The request must already be validated
// and authorized.
func (e *Executor) Execute(req *Request) Outcome {
	switch req.Kind {
	case ActionKick:
		return e.kick(req)
	case ActionBan:
		return e.ban(req)
	case ActionUnban:
		return e.unban(req)
	case ActionMute:
		return e.mute(req)
	case ActionUnmute:
		return e.unmute(req)
	case ActionWarn:
		return e.warn(req)
	case ActionPurge:
		return e.purge(req)
	default:
		return transient(fmt.Sprintf("❌ An error occurred: unsupported action %q", req.Kind))
	}
}

func (e *Executor) guildName(guildID string) string {
	name, err := e.client.GuildName(guildID)
	if err != nil || name == "" {
		return "this server"
	}
	return name
}

func (e *Executor) kick(req *Request) Outcome {
	member, err := e.client.ResolveMember(req.GuildID, req.Target.MemberID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound("⚠️ Member not found.")
		}
		return transient("⚠️ Kick failed due to a network error.")
	}

	// DM before the kick; afterwards there is no shared channel left to
	// deliver through.
	var notes []string
	dm := fmt.Sprintf("👢 You were kicked from **%s**.\n**Reason:** %s", e.guildName(req.GuildID), req.Reason)
	if e.notifier.Notify(member.User.ID, dm) == Suppressed {
		notes = append(notes, "⚠️ Couldn't DM the user (they probably have DMs off).")
	}

	err = errutil.HandleDiscordError("kick member", func() error {
		return e.client.KickMember(req.GuildID, member.User.ID, req.Reason)
	})
	switch {
	case err == nil:
		return success(fmt.Sprintf("👢 Kicked %s | Reason: %s", member.User.Mention(), req.Reason), notes...)
	case errors.Is(err, ErrForbidden):
		return denied("❌ I don't have permission to kick that user.")
	default:
		return transient("⚠️ Kick failed due to a network error.")
	}
}

func (e *Executor) ban(req *Request) Outcome {
	member, err := e.client.ResolveMember(req.GuildID, req.Target.MemberID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return transient("⚠️ Ban failed due to a network error.")
		}
		// Not in the guild; fall back to the global user directory so
		// raw IDs can still be banned.
		return e.banByRawID(req)
	}

	dm := fmt.Sprintf("🔨 You were banned from **%s**.\n**Reason:** %s", e.guildName(req.GuildID), req.Reason)
	e.notifier.Notify(member.User.ID, dm)

	err = errutil.HandleDiscordError("ban member", func() error {
		return e.client.BanUser(req.GuildID, member.User.ID, req.Reason)
	})
	switch {
	case err == nil:
		return success(fmt.Sprintf("🔨 Banned %s | Reason: %s", member.User.Mention(), req.Reason))
	case errors.Is(err, ErrForbidden):
		return denied("❌ I can't ban that user.")
	default:
		return transient("⚠️ Ban failed due to a network error.")
	}
}

func (e *Executor) banByRawID(req *Request) Outcome {
	rawID := req.Target.RawID
	if rawID == "" {
		rawID = req.Target.MemberID
	}
	user, err := e.client.FetchUserByID(rawID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(fmt.Sprintf("❌ Couldn't find user with ID `%s`.", rawID))
		}
		return transient("⚠️ Ban failed due to a network error.")
	}

	err = errutil.HandleDiscordError("ban user by id", func() error {
		return e.client.BanUser(req.GuildID, user.ID, req.Reason)
	})
	switch {
	case err == nil:
		return success(fmt.Sprintf("🔨 Banned `%s` | Reason: %s", user.Tag(), req.Reason))
	case errors.Is(err, ErrForbidden):
		return denied("❌ I can't ban that user.")
	default:
		return transient("⚠️ Ban failed due to a network error.")
	}
}

func (e *Executor) unban(req *Request) Outcome {
	bans, err := e.client.ListBans(req.GuildID)
	if err != nil {
		return transient("⚠️ Unban failed due to a network error.")
	}

	// The platform has no partial-name lookup, so the full list is
	// scanned. ID matching is the reliable path; name#discriminator is
	// kept as best-effort legacy support.
	var match *User
	for i := range bans {
		u := bans[i].User
		if req.Target.RawID != "" && u.ID == req.Target.RawID {
			match = &u
			break
		}
		if req.Target.Name != "" && req.Target.Discriminator != "" &&
			u.Username == req.Target.Name && u.Discriminator == req.Target.Discriminator {
			match = &u
			break
		}
	}
	if match == nil {
		return notFound("⚠️ User not found in the ban list.")
	}

	var notes []string
	dm := fmt.Sprintf("✅ You have been unbanned from **%s**.", e.guildName(req.GuildID))
	if e.notifier.Notify(match.ID, dm) == Suppressed {
		notes = append(notes, fmt.Sprintf("⚠️ Couldn't DM %s.", match.Tag()))
	}

	err = errutil.HandleDiscordError("unban user", func() error {
		return e.client.UnbanUser(req.GuildID, match.ID)
	})
	switch {
	case err == nil:
		return success(fmt.Sprintf("✅ Unbanned %s", match.Mention()), notes...)
	case errors.Is(err, ErrForbidden):
		return denied("❌ I can't unban that user.")
	default:
		return transient("⚠️ Unban failed due to a network error.")
	}
}

func (e *Executor) mutedRole(guildID string) (*Role, error) {
	name := files.DefaultMutedRoleName
	if e.MutedRoleName != nil {
		if n := e.MutedRoleName(guildID); n != "" {
			name = n
		}
	}
	// Looked up fresh on every call; roles can be recreated between
	// invocations.
	return e.client.ResolveRoleByName(guildID, name)
}

func (e *Executor) mute(req *Request) Outcome {
	role, err := e.mutedRole(req.GuildID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return denied("❌ 'Muted' role not found. Please create one with no Send Messages/Speak permissions.")
		}
		return transient("⚠️ Mute failed due to a network error.")
	}

	member, err := e.client.ResolveMember(req.GuildID, req.Target.MemberID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound("⚠️ Member not found.")
		}
		return transient("⚠️ Mute failed due to a network error.")
	}

	err = errutil.HandleDiscordError("add muted role", func() error {
		return e.client.AddRole(req.GuildID, member.User.ID, role.ID)
	})
	switch {
	case errors.Is(err, ErrForbidden):
		return denied("❌ I don't have permission to manage that user's roles.")
	case err != nil:
		return transient("⚠️ Mute failed due to a network error.")
	}

	var notes []string
	dm := fmt.Sprintf("🔇 You have been muted in **%s**.\nReason: `%s`", e.guildName(req.GuildID), req.Reason)
	if e.notifier.Notify(member.User.ID, dm) == Suppressed {
		notes = append(notes, "⚠️ Couldn't DM the muted user.")
	}

	// Registered only after the mute itself succeeded, superseding any
	// earlier pending reversal for this member.
	if req.Duration > 0 {
		e.scheduleAutoUnmute(req, member.User.ID)
	}

	return success(fmt.Sprintf("🔇 Muted %s | Reason: `%s`", member.User.Mention(), req.Reason), notes...)
}

func (e *Executor) scheduleAutoUnmute(req *Request, userID string) {
	guildID := req.GuildID
	channelID := req.ChannelID
	duration := req.Duration

	e.scheduler.Schedule(guildID, userID, duration, func() {
		role, err := e.mutedRole(guildID)
		if err != nil {
			log.ApplicationLogger().Error("auto unmute: muted role lookup failed",
				"guild_id", guildID,
				"user_id", userID,
				"error", err)
			return
		}
		if err := e.client.RemoveRole(guildID, userID, role.ID); err != nil {
			log.ApplicationLogger().Error("auto unmute: role removal failed",
				"guild_id", guildID,
				"user_id", userID,
				"error", err)
			return
		}
		e.notifier.Notify(userID, fmt.Sprintf("🔊 You have been unmuted in **%s**.", e.guildName(guildID)))
		if channelID != "" {
			msg := fmt.Sprintf("🔊 Automatically unmuted %s after `%d` seconds.", User{ID: userID}.Mention(), int(duration.Seconds()))
			if _, err := e.client.SendChannelMessage(channelID, msg); err != nil {
				log.DiscordLogger().Debug("auto unmute announcement failed",
					"channel_id", channelID,
					"error", err)
			}
		}
	})
}

func (e *Executor) unmute(req *Request) Outcome {
	role, err := e.mutedRole(req.GuildID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return denied("❌ 'Muted' role not found.")
		}
		return transient("⚠️ Unmute failed due to a network error.")
	}

	member, err := e.client.ResolveMember(req.GuildID, req.Target.MemberID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound("⚠️ Member not found.")
		}
		return transient("⚠️ Unmute failed due to a network error.")
	}

	if !member.HasRole(role.ID) {
		e.scheduler.Cancel(req.GuildID, member.User.ID)
		return success(fmt.Sprintf("ℹ️ %s is not muted.", member.User.Mention()))
	}

	err = errutil.HandleDiscordError("remove muted role", func() error {
		return e.client.RemoveRole(req.GuildID, member.User.ID, role.ID)
	})
	switch {
	case errors.Is(err, ErrForbidden):
		return denied("❌ I don't have permission to manage that user's roles.")
	case err != nil:
		return transient("⚠️ Unmute failed due to a network error.")
	}

	e.scheduler.Cancel(req.GuildID, member.User.ID)

	var notes []string
	dm := fmt.Sprintf("🔊 You have been unmuted in **%s**.", e.guildName(req.GuildID))
	if e.notifier.Notify(member.User.ID, dm) == Suppressed {
		notes = append(notes, "⚠️ Couldn't DM the user.")
	}

	return success(fmt.Sprintf("🔊 %s has been unmuted.", member.User.Mention()), notes...)
}

func (e *Executor) warn(req *Request) Outcome {
	member, err := e.client.ResolveMember(req.GuildID, req.Target.MemberID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound("⚠️ Member not found.")
		}
		return transient("⚠️ Warn failed due to a network error.")
	}

	// A warning has no platform mutation; once authorized it always
	// succeeds, with an undeliverable DM noted in the outcome.
	var notes []string
	dm := fmt.Sprintf("⚠️ You have been warned in **%s**.\nReason: `%s`", e.guildName(req.GuildID), req.Reason)
	if e.notifier.Notify(member.User.ID, dm) == Suppressed {
		notes = append(notes, "⚠️ Couldn't DM the warned user.")
	}

	return success(fmt.Sprintf("⚠️ Warned %s | Reason: `%s`", member.User.Mention(), req.Reason), notes...)
}

func (e *Executor) purge(req *Request) Outcome {
	// One extra message covers the triggering command message when the
	// invocation arrived as a visible channel message.
	err := errutil.HandleDiscordError("purge messages", func() error {
		return e.client.DeleteMessages(req.ChannelID, req.Count+1)
	})
	switch {
	case err == nil:
		return success(fmt.Sprintf("🧹 Deleted `%d` messages.", req.Count))
	case errors.Is(err, ErrForbidden):
		return denied("❌ I don't have permission to manage messages here.")
	default:
		return transient("⚠️ Purge failed due to a network error.")
	}
}
