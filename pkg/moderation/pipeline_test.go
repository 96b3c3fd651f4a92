package moderation

import (
	"strings"
	"testing"
	"time"
)

func newTestService(client *fakeClient, clock Clock) *Service {
	scheduler := NewScheduler(clock)
	executor := NewExecutor(client, NewNotifier(client), scheduler)
	return NewService(client, executor, NewReporter(), clock)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHandleKickEndToEnd(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	member := client.addMember("m1", "alice")
	svc := newTestService(client, newFakeClock())

	req := NewRequest(ActionKick, "g", "c", "issuer", RequiredPermission(ActionKick))
	req.Target = TargetRef{MemberID: "m1"}
	req.Reason = "spam"

	replier := &fakeReplier{}
	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", Replier: replier})

	snap := client.snapshot()
	if len(snap.kicked) != 1 || snap.kicked[0] != "m1" {
		t.Fatalf("expected exactly one kick of m1, got %v", snap.kicked)
	}
	if !containsSub(snap.dms, "spam") {
		t.Fatalf("DM should carry the reason, got %v", snap.dms)
	}
	if !containsSub(replier.all(), member.User.Mention()) || !containsSub(replier.all(), "spam") {
		t.Fatalf("public report should mention target and reason, got %v", replier.all())
	}
}

func TestHandleDeniedMuteNeverExecutes(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.roles["Muted"] = &Role{ID: "r-muted", Name: "Muted"}
	client.addMember("m1", "alice")
	svc := newTestService(client, newFakeClock())

	req := NewRequest(ActionMute, "g", "c", "issuer", 0)
	req.Target = TargetRef{MemberID: "m1"}
	req.Duration = 60 * time.Second

	replier := &fakeReplier{}
	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", EphemeralSupported: true, Replier: replier})

	snap := client.snapshot()
	if len(snap.ops) != 0 {
		t.Fatalf("denied action must not touch the platform, got %v", snap.ops)
	}
	if svc.Executor().Scheduler().PendingCount() != 0 {
		t.Fatalf("denied mute must not create a pending sanction")
	}
	if len(replier.replies) != 1 || !strings.Contains(replier.replies[0], "ephemeral|❌ You don't have permission") {
		t.Fatalf("expected ephemeral denial, got %v", replier.replies)
	}
}

func TestHandleTimedMuteAutoReverses(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.roles["Muted"] = &Role{ID: "r-muted", Name: "Muted"}
	client.addMember("m1", "alice")
	clock := newFakeClock()
	svc := newTestService(client, clock)

	req := NewRequest(ActionMute, "g", "chan-1", "issuer", RequiredPermission(ActionMute))
	req.Target = TargetRef{MemberID: "m1"}
	req.Duration = 5 * time.Second

	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "chan-1", Replier: &fakeReplier{}})

	if got := client.snapshot().rolesAdded; len(got) != 1 || got[0] != "m1:r-muted" {
		t.Fatalf("expected muted role added, got %v", got)
	}

	clock.fire()
	waitFor(t, "auto unmute", func() bool {
		return len(client.snapshot().rolesRemoved) == 1
	})

	snap := client.snapshot()
	if snap.rolesRemoved[0] != "m1:r-muted" {
		t.Fatalf("expected muted role removed, got %v", snap.rolesRemoved)
	}
	if !containsSub(snap.channelMsgs, "Automatically unmuted") {
		t.Fatalf("expected auto unmute announcement, got %v", snap.channelMsgs)
	}
	if svc.Executor().Scheduler().PendingCount() != 0 {
		t.Fatalf("fired sanction should be discarded")
	}

	// A second fire must not produce a second reversal.
	clock.fire()
	time.Sleep(50 * time.Millisecond)
	if got := len(client.snapshot().rolesRemoved); got != 1 {
		t.Fatalf("reversal ran %d times", got)
	}
}

func TestHandleRemuteSupersedesPreviousDuration(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.roles["Muted"] = &Role{ID: "r-muted", Name: "Muted"}
	client.addMember("m1", "alice")
	clock := newFakeClock()
	svc := newTestService(client, clock)

	mute := func(d time.Duration) {
		req := NewRequest(ActionMute, "g", "c", "issuer", RequiredPermission(ActionMute))
		req.Target = TargetRef{MemberID: "m1"}
		req.Duration = d
		svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", Replier: &fakeReplier{}})
	}

	mute(10 * time.Second)
	mute(60 * time.Second)

	if got := svc.Executor().Scheduler().PendingCount(); got != 1 {
		t.Fatalf("expected a single pending sanction after remute, got %d", got)
	}

	clock.fire()
	waitFor(t, "single reversal", func() bool {
		return len(client.snapshot().rolesRemoved) >= 1
	})
	time.Sleep(50 * time.Millisecond)
	if got := len(client.snapshot().rolesRemoved); got != 1 {
		t.Fatalf("expected exactly one reversal, got %d", got)
	}
}

func TestHandlePurgeInvalidCountRejectedBeforeExecution(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	svc := newTestService(client, newFakeClock())

	for _, count := range []int{0, -4, 101} {
		req := NewRequest(ActionPurge, "g", "c", "issuer", RequiredPermission(ActionPurge))
		req.Count = count

		replier := &fakeReplier{}
		svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", EphemeralSupported: true, Replier: replier})

		if len(client.snapshot().deleteCounts) != 0 {
			t.Fatalf("count=%d: no deletion call expected", count)
		}
		if !containsSub(replier.all(), "between 1 and 100") {
			t.Fatalf("count=%d: expected range message, got %v", count, replier.all())
		}
	}
}

func TestHandlePurgeConfirmationCleanedUp(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	clock := newFakeClock()
	svc := newTestService(client, clock)

	req := NewRequest(ActionPurge, "g", "chan-1", "issuer", RequiredPermission(ActionPurge))
	req.Count = 5

	replier := &fakeReplier{}
	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "chan-1", Replier: replier})

	if len(replier.publics) != 1 || !strings.Contains(replier.publics[0], "`5`") {
		t.Fatalf("expected public confirmation, got %v", replier.publics)
	}

	clock.fire()
	waitFor(t, "confirmation cleanup", func() bool {
		return len(client.snapshot().deletedMsgs) == 1
	})
	if got := client.snapshot().deletedMsgs[0]; got != "chan-1|pub-1" {
		t.Fatalf("unexpected cleanup target %q", got)
	}
}

func TestHandleMirrorsSuccessToModLogChannel(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.addMember("m1", "alice")
	svc := newTestService(client, newFakeClock())
	svc.ModLogChannel = func(guildID string) string { return "mod-log" }

	req := NewRequest(ActionWarn, "g", "c", "issuer", RequiredPermission(ActionWarn))
	req.Target = TargetRef{MemberID: "m1"}

	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", Replier: &fakeReplier{}})

	msgs := client.snapshot().channelMsgs
	if len(msgs) != 1 || !strings.Contains(msgs[0], "mod-log|⚠️ Warned") {
		t.Fatalf("expected mirrored outcome in mod log, got %v", msgs)
	}
}

func TestHandleMissingTargetReportsUsage(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	svc := newTestService(client, newFakeClock())

	req := NewRequest(ActionKick, "g", "c", "issuer", RequiredPermission(ActionKick))

	replier := &fakeReplier{}
	svc.Handle(req, &Invocation{GuildID: "g", ChannelID: "c", EphemeralSupported: true, Replier: replier})

	if !containsSub(replier.all(), "Usage: `-kick") {
		t.Fatalf("expected usage message, got %v", replier.all())
	}
	if len(client.snapshot().ops) != 0 {
		t.Fatalf("invalid request must not reach the platform")
	}
}
