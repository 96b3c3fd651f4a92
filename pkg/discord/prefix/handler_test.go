package prefix

import (
	"testing"
	"time"

	"github.com/small-frappuccino/modcore/pkg/moderation"
)

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	name, args, ok := SplitCommand("-kick <@1> being rude", "-")
	if !ok || name != "kick" {
		t.Fatalf("unexpected parse: name=%q ok=%v", name, ok)
	}
	if len(args) != 3 || args[0] != "<@1>" {
		t.Fatalf("unexpected args: %v", args)
	}

	if _, _, ok := SplitCommand("hello there", "-"); ok {
		t.Fatalf("non-prefixed message should not parse")
	}
	if _, _, ok := SplitCommand("-", "-"); ok {
		t.Fatalf("bare prefix should not parse")
	}
	if name, _, _ := SplitCommand("-KICK <@1>", "-"); name != "kick" {
		t.Fatalf("command name should be lowercased, got %q", name)
	}
}

func TestBuildRequestKickWithReason(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionKick, "g", "c", "issuer", 8, []string{"<@42>", "spamming", "links"})
	if req.Target.MemberID != "42" {
		t.Fatalf("unexpected target: %+v", req.Target)
	}
	if req.Reason != "spamming links" {
		t.Fatalf("unexpected reason: %q", req.Reason)
	}
	if req.IssuerPermissions != 8 {
		t.Fatalf("permissions not carried: %d", req.IssuerPermissions)
	}
}

func TestBuildRequestKickDefaultsReason(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionKick, "g", "c", "issuer", 0, []string{"<@42>"})
	if req.Reason != moderation.DefaultReason {
		t.Fatalf("expected default reason, got %q", req.Reason)
	}
}

func TestBuildRequestMuteParsesDuration(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionMute, "g", "c", "issuer", 0, []string{"<@42>", "120", "too", "loud"})
	if req.Duration != 120*time.Second {
		t.Fatalf("unexpected duration: %v", req.Duration)
	}
	if req.Reason != "too loud" {
		t.Fatalf("unexpected reason: %q", req.Reason)
	}

	// Without a numeric second argument, everything is reason.
	req = BuildRequest(moderation.ActionMute, "g", "c", "issuer", 0, []string{"<@42>", "being", "loud"})
	if req.Duration != 0 {
		t.Fatalf("expected no duration, got %v", req.Duration)
	}
	if req.Reason != "being loud" {
		t.Fatalf("unexpected reason: %q", req.Reason)
	}
}

func TestBuildRequestUnbanForms(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionUnban, "g", "c", "issuer", 0, []string{"12345"})
	if req.Target.RawID != "12345" {
		t.Fatalf("unexpected target: %+v", req.Target)
	}

	req = BuildRequest(moderation.ActionUnban, "g", "c", "issuer", 0, []string{"alice#1234"})
	if req.Target.Name != "alice" || req.Target.Discriminator != "1234" {
		t.Fatalf("unexpected target: %+v", req.Target)
	}
}

func TestBuildRequestPurgeAmount(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionPurge, "g", "c", "issuer", 0, []string{"25"})
	if req.Count != 25 {
		t.Fatalf("unexpected count: %d", req.Count)
	}

	// Garbage stays zero and fails validation downstream.
	req = BuildRequest(moderation.ActionPurge, "g", "c", "issuer", 0, []string{"lots"})
	if req.Count != 0 {
		t.Fatalf("unexpected count: %d", req.Count)
	}
	if req.Validate() == nil {
		t.Fatalf("zero count should fail validation")
	}
}

func TestBuildRequestMissingTargetFailsValidation(t *testing.T) {
	t.Parallel()

	req := BuildRequest(moderation.ActionKick, "g", "c", "issuer", 0, nil)
	err := req.Validate()
	if err == nil {
		t.Fatalf("expected validation error for missing target")
	}
	if err.Error() != moderation.Usage(moderation.ActionKick) {
		t.Fatalf("expected kick usage string, got %q", err.Error())
	}
}
