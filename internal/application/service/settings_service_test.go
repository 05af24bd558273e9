package service

import (
	"context"
	"testing"

	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Local Shop Co., Ltd.", s.CompanyName)
	assert.True(t, dec("7").Equal(s.VatRate))

	s.CompanyName = "Corner Cafe"
	s.VatRate = dec("8.5")
	require.NoError(t, env.settings.UpdateSettings(ctx, s))

	s, err = env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", s.CompanyName)
	assert.Equal(t, "8.5", s.VatRate.String())

	bad := *s
	bad.VatRate = dec("101")
	assert.True(t, apperror.IsKind(env.settings.UpdateSettings(ctx, &bad), apperror.KindInvalidInput))

	bad = *s
	bad.CompanyName = ""
	assert.True(t, apperror.IsKind(env.settings.UpdateSettings(ctx, &bad), apperror.KindInvalidInput))
}
