package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/findnonascii/internal/cli/config"
	"github.com/leapstack-labs/findnonascii/internal/cli/testutil"
)

func TestNewEncodingsCommand(t *testing.T) {
	config.ResetConfig()

	cmd := NewEncodingsCommand()
	assert.Equal(t, "encodings", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	for _, want := range []string{"utf-8", "us-ascii", "iso-8859-1", "windows-1252", "koi8-r", "euc-jp", "shift_jis", "gb18030"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "iso-2022-jp", "stateful encodings are not listed")
	testutil.AssertNoANSI(t, out)
}

func TestNewConfigCommand_ParsesAsYAML(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())
	testutil.ClearLocale(t, "de_DE.ISO-8859-1")

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	cmd := NewConfigCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var got struct {
		Output      string `yaml:"output"`
		Interactive string `yaml:"interactive"`
		Locale      struct {
			Lang string `yaml:"lang"`
		} `yaml:"locale"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "text", got.Output)
	assert.Equal(t, "auto", got.Interactive)
	assert.Equal(t, "de_DE.ISO-8859-1", got.Locale.Lang)
}

func TestNewEncodingsCommand_RejectsArgs(t *testing.T) {
	cmd := NewEncodingsCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestNewConfigCommand(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())
	testutil.ClearLocale(t, "C")
	t.Setenv("FINDNONASCII_ENCODING", "latin1")

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "yaml", args: []string{}, want: []string{"encoding: latin1", "output: text", "lang: C"}},
		{name: "toml", args: []string{"--format", "toml"}, want: []string{"encoding = ", "latin1", "[locale]"}},
		{name: "unknown format", args: []string{"--format", "ini"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewConfigCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
