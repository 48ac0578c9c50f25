package cooldown_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/cooldown"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
)

// TestErrOnCooldown_Error tests the error message formatting
func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		name string
		err  cooldown.ErrOnCooldown
		want string
	}{
		{
			name: "minutes and seconds",
			err:  cooldown.ErrOnCooldown{Action: "plant", Remaining: 2*time.Minute + 30*time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownWithMinutes, "plant", 2, 30),
		},
		{
			name: "seconds only",
			err:  cooldown.ErrOnCooldown{Action: "harvest", Remaining: 45 * time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, "harvest", 45),
		},
		{
			name: "sub-second",
			err:  cooldown.ErrOnCooldown{Action: "interact", Remaining: 120 * time.Millisecond},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownMilliseconds, "interact", 120),
		},
		{
			name: "zero remaining",
			err:  cooldown.ErrOnCooldown{Action: "magic", Remaining: 0},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, "magic", 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestErrOnCooldown_Is tests the errors.Is() compatibility
func TestErrOnCooldown_Is(t *testing.T) {
	err := cooldown.ErrOnCooldown{Action: "test", Remaining: time.Minute}

	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), cooldown.ErrOnCooldown{}))
	assert.False(t, errors.Is(err, errors.New("other error")))
}

func TestConfig_Duration(t *testing.T) {
	cfg := cooldown.Config{Cooldowns: map[string]time.Duration{"custom": time.Second}}
	assert.Equal(t, time.Second, cfg.Duration("custom"))
	assert.Equal(t, domain.DefaultInteractionCooldown, cfg.Duration(domain.ActionGridInteraction))
	assert.Equal(t, cooldown.DefaultCooldownDuration, cfg.Duration("other"))
}

func newService(devMode bool) (cooldown.Service, *scheduler.Manual) {
	clock := scheduler.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc := cooldown.NewMemoryService(cooldown.Config{
		DevMode:   devMode,
		Cooldowns: map[string]time.Duration{domain.ActionGridInteraction: 500 * time.Millisecond},
	}, clock)
	return svc, clock
}

func TestMemoryService_EnforceCooldown(t *testing.T) {
	ctx := context.Background()
	svc, clock := newService(false)
	key, action := domain.CooldownKeyGrid, domain.ActionGridInteraction

	calls := 0
	run := func() error {
		calls++
		return nil
	}

	require.NoError(t, svc.EnforceCooldown(ctx, key, action, run))
	assert.Equal(t, 1, calls)

	clock.Advance(200 * time.Millisecond)
	err := svc.EnforceCooldown(ctx, key, action, run)
	var cdErr cooldown.ErrOnCooldown
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, 300*time.Millisecond, cdErr.Remaining)
	assert.Equal(t, 1, calls)

	onCooldown, remaining, err := svc.CheckCooldown(ctx, key, action)
	require.NoError(t, err)
	assert.True(t, onCooldown)
	assert.Equal(t, 300*time.Millisecond, remaining)

	// Exactly at the boundary the action is allowed again.
	clock.Advance(300 * time.Millisecond)
	require.NoError(t, svc.EnforceCooldown(ctx, key, action, run))
	assert.Equal(t, 2, calls)
}

func TestMemoryService_FailedActionDoesNotConsumeCooldown(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(false)
	key, action := domain.CooldownKeyGrid, domain.ActionGridInteraction

	boom := errors.New("rejected")
	assert.ErrorIs(t, svc.EnforceCooldown(ctx, key, action, func() error { return boom }), boom)

	last, err := svc.GetLastUsed(ctx, key, action)
	require.NoError(t, err)
	assert.Nil(t, last)

	assert.NoError(t, svc.EnforceCooldown(ctx, key, action, func() error { return nil }))
}

func TestMemoryService_ResetAndLastUsed(t *testing.T) {
	ctx := context.Background()
	svc, clock := newService(false)
	key, action := domain.CooldownKeyGrid, domain.ActionGridInteraction

	require.NoError(t, svc.EnforceCooldown(ctx, key, action, func() error { return nil }))
	last, err := svc.GetLastUsed(ctx, key, action)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, clock.Now(), *last)

	require.NoError(t, svc.ResetCooldown(ctx, key, action))
	onCooldown, _, err := svc.CheckCooldown(ctx, key, action)
	require.NoError(t, err)
	assert.False(t, onCooldown)
}

func TestMemoryService_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(false)

	require.NoError(t, svc.EnforceCooldown(ctx, "a", domain.ActionGridInteraction, func() error { return nil }))
	assert.NoError(t, svc.EnforceCooldown(ctx, "b", domain.ActionGridInteraction, func() error { return nil }))
	assert.Error(t, svc.EnforceCooldown(ctx, "a", domain.ActionGridInteraction, func() error { return nil }))
}

func TestMemoryService_DevModeBypass(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(true)
	key, action := domain.CooldownKeyGrid, domain.ActionGridInteraction

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.EnforceCooldown(ctx, key, action, func() error { return nil }))
	}
	last, err := svc.GetLastUsed(ctx, key, action)
	require.NoError(t, err)
	assert.NotNil(t, last, "dev mode still records usage")
}
