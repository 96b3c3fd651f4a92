package moderation

import (
	"errors"
	"time"

	"github.com/small-frappuccino/modcore/pkg/log"
)

// confirmDeleteDelay is how long a purge confirmation stays visible before
// its cosmetic cleanup.
const confirmDeleteDelay = 3 * time.Second

// Service is the pipeline entry point the command front ends call. All
// observable effects happen through the invocation's replier and the
// community client.
type Service struct {
	client   CommunityClient
	executor *Executor
	reporter *Reporter
	clock    Clock

	// ModLogChannel resolves a guild's moderation log channel ID, or ""
	// when none is configured.
	ModLogChannel func(guildID string) string
}

// NewService wires the pipeline over the given collaborators.
func NewService(client CommunityClient, executor *Executor, reporter *Reporter, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		client:   client,
		executor: executor,
		reporter: reporter,
		clock:    clock,
	}
}

// Executor returns the service's executor.
func (s *Service) Executor() *Executor {
	return s.executor
}

// Handle runs one invocation through validation, authorization, execution,
// and reporting.
func (s *Service) Handle(req *Request, inv *Invocation) {
	if err := req.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.reporter.Report(inv, verr.Message, true)
			return
		}
		s.reporter.Report(inv, "❌ An error occurred: "+err.Error(), true)
		return
	}

	if authErr := Authorize(req); authErr != nil {
		log.ApplicationLogger().Info("action denied",
			"action", req.Kind.String(),
			"guild_id", req.GuildID,
			"issuer_id", req.IssuerID)
		s.reporter.Report(inv, authErr.DenialMessage(), true)
		return
	}

	outcome := s.executor.Execute(req)

	log.ApplicationLogger().Info("action executed",
		"action", req.Kind.String(),
		"guild_id", req.GuildID,
		"issuer_id", req.IssuerID,
		"status", int(outcome.Status))

	for _, note := range outcome.Notes {
		s.reporter.Report(inv, note, false)
	}
	msgID := s.reporter.Report(inv, outcome.Detail, false)

	if req.Kind == ActionPurge && outcome.Succeeded() && msgID != "" {
		s.cleanupConfirmation(inv.ChannelID, msgID)
	}

	if outcome.Succeeded() {
		s.logToModChannel(req, outcome)
	}
}

// cleanupConfirmation removes a purge confirmation after a short delay.
// Fire-and-forget; failure is ignored.
func (s *Service) cleanupConfirmation(channelID, messageID string) {
	timer := s.clock.After(confirmDeleteDelay)
	go func() {
		<-timer
		_ = s.client.DeleteMessage(channelID, messageID)
	}()
}

// logToModChannel mirrors successful outcomes to the guild's configured
// moderation log channel, when one exists and differs from the origin.
func (s *Service) logToModChannel(req *Request, outcome Outcome) {
	if s.ModLogChannel == nil {
		return
	}
	channelID := s.ModLogChannel(req.GuildID)
	if channelID == "" || channelID == req.ChannelID {
		return
	}
	if _, err := s.client.SendChannelMessage(channelID, outcome.Detail); err != nil {
		log.DiscordLogger().Debug("mod log delivery failed",
			"guild_id", req.GuildID,
			"channel_id", channelID,
			"error", err)
	}
}
