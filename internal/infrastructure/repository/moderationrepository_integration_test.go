package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/moderation"
)

func newCase(t *testing.T, caseID, userID string, action moderation.Action, reason string) *moderation.Case {
	c, err := moderation.NewCase(caseID, userID, "mod-1", action, reason, "")
	require.NoError(t, err)
	return c
}

func TestModerationRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	t.Run("save assigns the database id", func(t *testing.T) {
		c := newCase(t, "CASE0001", "user-1", moderation.ActionWarn, "spam")

		err := repo.Save(ctx, c)

		require.NoError(t, err)
		assert.NotZero(t, c.ID())
	})

	t.Run("find by case code", func(t *testing.T) {
		found, err := repo.FindByCaseID(ctx, "CASE0001")

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, moderation.ActionWarn, found.Action())
		assert.Equal(t, "spam", found.Reason())
		assert.True(t, found.Active())
	})

	t.Run("missing case yields nil without error", func(t *testing.T) {
		found, err := repo.FindByCaseID(ctx, "NOPE0000")

		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate case code fails", func(t *testing.T) {
		dup := newCase(t, "CASE0001", "user-2", moderation.ActionKick, "")

		assert.Error(t, repo.Save(ctx, dup))
	})
}

func TestModerationRepository_ListActiveWarnings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	warn1 := newCase(t, "WARN0001", "user-1", moderation.ActionWarn, "first")
	warn2 := newCase(t, "WARN0002", "user-1", moderation.ActionWarn, "second")
	require.NoError(t, repo.Save(ctx, warn1))
	require.NoError(t, repo.Save(ctx, warn2))

	// Other users and other actions stay out of the list.
	require.NoError(t, repo.Save(ctx, newCase(t, "WARN0003", "user-2", moderation.ActionWarn, "")))
	require.NoError(t, repo.Save(ctx, newCase(t, "KICK0001", "user-1", moderation.ActionKick, "")))

	t.Run("active warnings for the user, oldest first", func(t *testing.T) {
		warnings, err := repo.ListActiveWarnings(ctx, "user-1")

		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Equal(t, "WARN0001", warnings[0].CaseID())
		assert.Equal(t, "WARN0002", warnings[1].CaseID())
	})

	t.Run("deactivated warnings drop out", func(t *testing.T) {
		warn1.Deactivate()
		require.NoError(t, repo.Update(ctx, warn1))

		warnings, err := repo.ListActiveWarnings(ctx, "user-1")

		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "WARN0002", warnings[0].CaseID())
	})
}

func TestModerationRepository_Counters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCase(t, "CNT00001", "user-1", moderation.ActionWarn, "")))
	require.NoError(t, repo.Save(ctx, newCase(t, "CNT00002", "user-1", moderation.ActionMute, "")))
	require.NoError(t, repo.Save(ctx, newCase(t, "CNT00003", "user-2", moderation.ActionBan, "")))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	warns, err := repo.CountByAction(ctx, moderation.ActionWarn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), warns)

	kicks, err := repo.CountByAction(ctx, moderation.ActionKick)
	require.NoError(t, err)
	assert.Zero(t, kicks)
}

func TestModerationRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCase(t, "HIST0001", "user-1", moderation.ActionWarn, "")))
	require.NoError(t, repo.Save(ctx, newCase(t, "HIST0002", "user-1", moderation.ActionBan, "")))

	cases, err := repo.ListByUser(ctx, "user-1")

	require.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestMuteRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMuteRepository(db)
	ctx := context.Background()

	save := func(t *testing.T, caseID, userID string, expiresIn time.Duration) *moderation.MuteExpiry {
		expiry, err := moderation.NewMuteExpiry(caseID, "guild-1", userID, time.Now().Add(expiresIn))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expiry))
		return expiry
	}

	early := save(t, "MUTE0001", "user-1", 10*time.Minute)
	save(t, "MUTE0002", "user-2", time.Hour)

	t.Run("pending expiries ordered by due time", func(t *testing.T) {
		pending, err := repo.ListPending(ctx)

		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, "MUTE0001", pending[0].CaseID())
		assert.Equal(t, "MUTE0002", pending[1].CaseID())
	})

	t.Run("find active mute for a user", func(t *testing.T) {
		found, err := repo.FindActiveByUser(ctx, "guild-1", "user-1")

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "MUTE0001", found.CaseID())
	})

	t.Run("lifted expiries are no longer pending or active", func(t *testing.T) {
		early.Lift(time.Now())
		require.NoError(t, repo.Update(ctx, early))

		pending, err := repo.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "MUTE0002", pending[0].CaseID())

		found, err := repo.FindActiveByUser(ctx, "guild-1", "user-1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("no mute on record yields nil", func(t *testing.T) {
		found, err := repo.FindActiveByUser(ctx, "guild-1", "user-none")

		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestModerationRepository_ExistsCaseID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModerationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCase(t, "EXIST001", "user-1", moderation.ActionWarn, "")))

	taken, err := repo.ExistsCaseID(ctx, "EXIST001")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsCaseID(ctx, "FREE0001")
	require.NoError(t, err)
	assert.False(t, taken)
}
