package preferences

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bridge/internal/logging"
	"github.com/dmitrijs2005/bridge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	s := NewStore(settings.NewMemoryRepository(), logging.Nop())
	assert.Equal(t, Defaults(), s.Load(context.Background()))
}

func TestSetThenLoad(t *testing.T) {
	st := settings.NewMemoryRepository()
	s := NewStore(st, logging.Nop())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAutoShareNote, false))
	require.NoError(t, s.Set(ctx, KeyIsFirstLaunch, false))

	p := s.Load(ctx)
	assert.True(t, p.EnableHaptics)
	assert.False(t, p.AutoShareNote)
	assert.True(t, p.LogHealth)
	assert.False(t, p.IsFirstLaunch)
	assert.False(t, s.AutoShareNote(ctx))
	assert.True(t, s.LogHealth(ctx))

	raw, err := st.Get(ctx, KeyAutoShareNote)
	require.NoError(t, err)
	assert.Equal(t, "false", string(raw))
}

func TestSet_UnknownKey(t *testing.T) {
	s := NewStore(settings.NewMemoryRepository(), logging.Nop())
	err := s.Set(context.Background(), "darkMode", true)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestLoad_MalformedValueUsesDefault(t *testing.T) {
	st := settings.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyLogHealth, []byte("maybe")))

	p := NewStore(st, logging.Nop()).Load(ctx)
	assert.True(t, p.LogHealth)
}

func TestValue(t *testing.T) {
	p := Preferences{LogHealth: true}
	for _, key := range Keys {
		_, err := p.Value(key)
		require.NoError(t, err, key)
	}
	v, _ := p.Value(KeyLogHealth)
	assert.True(t, v)

	_, err := p.Value("nope")
	require.ErrorIs(t, err, ErrUnknownKey)
}
