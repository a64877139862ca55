package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2, cfg.Editor.Indent)
	assert.Equal(t, "json", cfg.Editor.From)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.Session.Enabled)
	assert.Equal(t, []string{"dark", "light"}, cfg.ThemeNames())
	assert.Equal(t, "  ", cfg.IndentString())
	assert.Equal(t, "114", cfg.Theme().String)
	require.NoError(t, cfg.Validate())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "partial editor",
			data: "editor:\n  indent: 4\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 4, cfg.Editor.Indent)
				assert.Equal(t, "json", cfg.Editor.From, "unset keys keep defaults")
				assert.True(t, cfg.UI.ShowLineNumbers)
			},
		},
		{
			name: "override one theme color",
			data: "themes:\n  dark:\n    key: \"#ff0000\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "#ff0000", cfg.Themes["dark"].Key)
				assert.Equal(t, "114", cfg.Themes["dark"].String)
				assert.Contains(t, cfg.Themes, "light")
			},
		},
		{
			name: "new theme selected",
			data: "ui:\n  theme: mono\nthemes:\n  mono:\n    accent: \"7\"\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "7", cfg.Theme().Accent)
			},
		},
		{name: "unknown theme", data: "ui:\n  theme: neon\n", wantErr: `ui.theme "neon"`},
		{name: "bad indent", data: "editor:\n  indent: 12\n", wantErr: "editor.indent"},
		{name: "bad yaml", data: "editor: [", wantErr: "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Merge(&cfg, []byte(tt.data))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err, "missing default file is fine")
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "nope.yaml"))
	require.ErrorContains(t, err, "read config")

	path := DefaultPath()
	assert.Equal(t, filepath.Join(dir, "jsonedit", "config.yaml"), path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  no_color: true\n"), 0o600))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.True(t, cfg.UI.NoColor)
}

func TestSessionPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/fallback.db", cfg.SessionPath("/fallback.db"))
	cfg.Session.Path = "/custom.db"
	assert.Equal(t, "/custom.db", cfg.SessionPath("/fallback.db"))
	cfg.Session.Enabled = false
	assert.Empty(t, cfg.SessionPath("/fallback.db"))
}

func TestDefaultYAMLIsCopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}
