package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/shout/internal/config"
	"github.com/jmylchreest/shout/internal/dbus"
	"github.com/jmylchreest/shout/internal/theme"
)

func TestPrintConfig(t *testing.T) {
	defaults := config.DefaultConfig()

	var tomlOut bytes.Buffer
	require.NoError(t, printConfig(&tomlOut, defaults, "toml"))
	assert.Contains(t, tomlOut.String(), "[terminal.dimensions]")
	var fromTOML config.Config
	require.NoError(t, toml.Unmarshal(tomlOut.Bytes(), &fromTOML))
	assert.Equal(t, defaults.Timeouts, fromTOML.Timeouts)

	var yamlOut bytes.Buffer
	require.NoError(t, printConfig(&yamlOut, defaults, "yaml"))
	assert.Contains(t, yamlOut.String(), "safe_area_top:")
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	assert.Contains(t, fromYAML, "tuning")

	assert.Error(t, printConfig(&bytes.Buffer{}, defaults, "json"))
}

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		in      string
		want    byte
		wantErr bool
	}{
		{in: "low", want: dbus.UrgencyLow},
		{in: "Normal", want: dbus.UrgencyNormal},
		{in: "", want: dbus.UrgencyNormal},
		{in: "critical", want: dbus.UrgencyCritical},
		{in: "2", want: dbus.UrgencyCritical},
		{in: "urgent", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseUrgency(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	saved := sendOpts
	t.Cleanup(func() { sendOpts = saved })

	sendOpts.title = "Hello"
	sendOpts.subtitle = "World"
	sendOpts.appName = "shout"
	sendOpts.urgency = "critical"
	sendOpts.image = "mail-unread"
	sendOpts.action = "Open"

	msg, err := buildMessage()
	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.Summary)
	assert.Equal(t, "World", msg.Body)
	assert.Equal(t, dbus.UrgencyCritical, msg.Urgency)
	assert.Equal(t, "mail-unread", msg.AppIcon)
	assert.Empty(t, msg.ImagePath)
	assert.Equal(t, []dbus.Action{{Key: "default", Label: "Open"}}, msg.Actions)

	sendOpts.image = "./pic.png"
	msg, err = buildMessage()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(msg.ImagePath))
	assert.Empty(t, msg.AppIcon)
}

func TestThemeTable(t *testing.T) {
	out := themeTable([]theme.Info{
		{Name: "default", Bundled: true},
		{Name: "mine", Path: "/tmp/mine.css"},
	}, "mine")

	var mine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "mine.css") {
			mine = line
		}
	}
	assert.Contains(t, out, "bundled")
	assert.Contains(t, mine, "*")
	assert.NotContains(t, strings.Replace(out, mine, "", 1), "*")
}
