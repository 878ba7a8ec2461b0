// Package services hosts long-running moderation background jobs.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"warden/internal/domain/guild"
	"warden/internal/domain/moderation"
	"warden/internal/domain/platform"
	"warden/internal/shared/goroutine"
	"warden/internal/shared/logger"
)

// MuteScheduler lifts mutes when their persisted expiry comes due. Timers
// are in-process only; the mute_expiries table is the source of truth and
// Recover re-arms everything pending after a restart.
type MuteScheduler struct {
	muteRepo moderation.MuteRepository
	gateway  platform.Gateway
	settings guild.SettingsResolver
	logger   logger.Interface

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMuteScheduler(
	muteRepo moderation.MuteRepository,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	logger logger.Interface,
) *MuteScheduler {
	return &MuteScheduler{
		muteRepo: muteRepo,
		gateway:  gateway,
		settings: settings,
		logger:   logger,
	}
}

func (s *MuteScheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
}

func (s *MuteScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Recover lifts every expiry that came due while the process was down and
// re-arms timers for the rest. Called once at startup, after Start.
func (s *MuteScheduler) Recover(ctx context.Context) error {
	now := time.Now()

	pending, err := s.muteRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending mute expiries: %w", err)
	}

	recovered := 0
	for _, expiry := range pending {
		if expiry.IsDue(now) {
			s.lift(ctx, expiry)
		} else {
			s.Schedule(expiry)
		}
		recovered++
	}

	if recovered > 0 {
		s.logger.Infow("recovered pending mute expiries", "count", recovered)
	}
	return nil
}

// Schedule arms a timer that lifts the mute when it comes due. Expiries
// already in the past fire immediately.
func (s *MuteScheduler) Schedule(expiry *moderation.MuteExpiry) {
	wait := time.Until(expiry.ExpiresAt())

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "mute-expiry-"+expiry.CaseID(), func() {
		defer s.wg.Done()

		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.lift(s.ctx, expiry)
		}
	})
}

// lift removes the muted role if the user still holds it and marks the
// expiry lifted. A user manually unmuted in the interim gets no double
// removal and no notice.
func (s *MuteScheduler) lift(ctx context.Context, expiry *moderation.MuteExpiry) {
	// Re-read the row: a manual unmute may have lifted it after this timer
	// was armed.
	current, err := s.muteRepo.FindActiveByUser(ctx, expiry.GuildID(), expiry.UserID())
	if err != nil {
		s.logger.Errorw("failed to re-check mute expiry", "error", err, "case_id", expiry.CaseID())
		return
	}
	if current == nil || current.CaseID() != expiry.CaseID() {
		return
	}

	settings, err := s.settings.Resolve(ctx, expiry.GuildID())
	if err != nil {
		s.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", expiry.GuildID())
		return
	}
	mutedRole := settings.MutedRole()

	stillMuted := false
	if mutedRole != "" {
		stillMuted, err = s.gateway.MemberHasRole(ctx, expiry.GuildID(), expiry.UserID(), mutedRole)
		if err != nil {
			s.logger.Warnw("failed to check muted role on expiry", "error", err, "user_id", expiry.UserID())
		}
	}

	if stillMuted {
		if err := s.gateway.RemoveRole(ctx, expiry.GuildID(), expiry.UserID(), mutedRole); err != nil {
			s.logger.Errorw("failed to remove muted role on expiry",
				"error", err,
				"user_id", expiry.UserID(),
				"case_id", expiry.CaseID(),
			)
			return
		}

		if logChannel := settings.ModLogChannel(); logChannel != "" {
			notice := platform.Notice{
				Kind:  platform.NoticeSuccess,
				Title: "Mute Expired",
				Fields: []platform.NoticeField{
					{Name: "Case", Value: expiry.CaseID(), Inline: true},
					{Name: "User", Value: fmt.Sprintf("<@%s>", expiry.UserID()), Inline: true},
				},
			}
			if err := s.gateway.SendNotice(ctx, logChannel, notice); err != nil {
				s.logger.Warnw("failed to send mute expiry notice", "error", err, "channel_id", logChannel)
			}
		}
	}

	current.Lift(time.Now())
	if err := s.muteRepo.Update(ctx, current); err != nil {
		s.logger.Errorw("failed to mark mute expiry lifted", "error", err, "case_id", expiry.CaseID())
		return
	}

	s.logger.Infow("mute lifted",
		"case_id", expiry.CaseID(),
		"user_id", expiry.UserID(),
		"role_removed", stillMuted,
	)
}
