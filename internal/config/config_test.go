package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "key-value backend",
			modify:  func(c *Config) { c.DBType = BackendKV },
			wantErr: false,
		},
		{
			name:    "postgres without dsn",
			modify:  func(c *Config) { c.DBType = BackendPostgres },
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			modify: func(c *Config) {
				c.DBType = BackendPostgres
				c.DBDSN = "postgres://guitar@localhost/guitar?sslmode=disable"
			},
			wantErr: false,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.DBType = "mongo" },
			wantErr: true,
		},
		{
			name:    "volume above one",
			modify:  func(c *Config) { c.Audio.MetronomeVolume = 1.5 },
			wantErr: true,
		},
		{
			name:    "tempo too slow",
			modify:  func(c *Config) { c.Audio.DefaultTempo = 5 },
			wantErr: true,
		},
		{
			name:    "bad reminder time",
			modify:  func(c *Config) { c.Reminder.Time = "7pm" },
			wantErr: true,
		},
		{
			name:    "hour out of range",
			modify:  func(c *Config) { c.Reminder.EndHour = 24 },
			wantErr: true,
		},
		{
			name:    "unknown timezone",
			modify:  func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_TYPE", "KV")
	t.Setenv("APP_DATA_DIR", dir)
	t.Setenv("DEFAULT_TEMPO", "90")
	t.Setenv("AUDIO_ENABLED", "false")
	t.Setenv("METRONOME_VOLUME", "0.5")
	t.Setenv("TELEGRAM_CHAT_ID", "123456789")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendKV, cfg.DBType)
	assert.Equal(t, dir, cfg.AppDataDir)
	assert.Equal(t, 90, cfg.Audio.DefaultTempo)
	assert.False(t, cfg.Audio.Enabled)
	assert.InDelta(t, 0.5, cfg.Audio.MetronomeVolume, 1e-9)
	assert.Equal(t, int64(123456789), cfg.Reminder.TelegramChatID)
	assert.Equal(t, 30, cfg.Practice.HistoryDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HISTORY_DAYS", "a month")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Practice.HistoryDays)
}
