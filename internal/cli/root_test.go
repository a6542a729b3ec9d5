package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/findnonascii/internal/cli/config"
	"github.com/leapstack-labs/findnonascii/internal/cli/testutil"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

// run executes the root command in an empty working directory.
func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))

	code := ExecuteContext(context.Background(), cmd, args)
	return runResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func isolate(t *testing.T, lang string) {
	t.Helper()
	t.Chdir(t.TempDir())
	testutil.ClearLocale(t, lang)
	for _, key := range []string{"ENCODING", "INTERACTIVE", "OUTPUT", "COLOR", "VERBOSE", "WATCH", "WATCH_DEBOUNCE"} {
		t.Setenv(config.EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(config.EnvPrefix+key))
	}
}

func TestRoot_NoArgs(t *testing.T) {
	isolate(t, "en_US.UTF-8")

	res := run(t, "")
	assert.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "find-non-ascii: no input files")
	assert.Contains(t, res.stderr, "usage:")
}

func TestRoot_Scan(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	path := testutil.WriteInput(t, "in.txt", []byte("xé"))

	res := run(t, "", "--color", "never", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, path+":1,2: char='é' code=233 bytes=[c3 a9]\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRoot_ExitStatus(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	good := testutil.WriteInput(t, "good.txt", []byte("ok"))
	missing := testutil.MissingPath(t, "missing.txt")
	bad := testutil.WriteInput(t, "bad.txt", []byte("a\n\xff"))

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "all good", args: []string{good}, wantCode: 0},
		{name: "missing file", args: []string{good, missing}, wantCode: 1, wantStderr: missing + ": no such file or directory"},
		{name: "decode error", args: []string{bad, good}, wantCode: 1, wantStderr: bad + ": Read failed at line 2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", append([]string{"--color", "never"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, res.code)
			if tt.wantStderr != "" {
				assert.Contains(t, res.stderr, tt.wantStderr)
			}
			assert.NotContains(t, res.stderr, "one or more inputs failed")
		})
	}
}

func TestRoot_Stdin(t *testing.T) {
	isolate(t, "en_US.UTF-8")

	res := run(t, "naïve\n", "-")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "(standard input):1,3: char='ï' code=239 bytes=[c3 af]\n", res.stdout)
}

func TestRoot_WatchStdinOnly(t *testing.T) {
	isolate(t, "en_US.UTF-8")

	res := run(t, "café\n", "--watch", "-")
	assert.Equal(t, 0, res.code, "stderr: %s", res.stderr)
	assert.Equal(t, "(standard input):1,4: char='é' code=233 bytes=[c3 a9]\n", res.stdout)
	assert.Contains(t, res.stderr, "Nothing to watch")
	assert.NotContains(t, res.stderr, "no watchable input files")
}

func TestRoot_Encoding(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	path := testutil.WriteInput(t, "latin1.txt", []byte("caf\xe9"))

	res := run(t, "", "-e", "ISO-8859-1", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, path+":1,4: char='é' code=233 bytes=[e9]\n", res.stdout)

	t.Setenv("FINDNONASCII_ENCODING", "windows-1252")
	res = run(t, "", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "bytes=[e9]")
}

func TestRoot_BadEncoding(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	path := testutil.WriteInput(t, "in.txt", []byte("x"))

	tests := []struct {
		name     string
		encoding string
		want     string
	}{
		{name: "unknown", encoding: "no-such-charset", want: "unknown encoding"},
		{name: "stateful", encoding: "iso-2022-jp", want: "stateful and UTF-16/32 encodings are not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", "--encoding", tt.encoding, path)
			assert.Equal(t, 1, res.code)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestRoot_NonUTF8Locale(t *testing.T) {
	isolate(t, "C")
	path := testutil.WriteInput(t, "in.txt", []byte("ok\né"))

	res := run(t, "", "--color", "never", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "warning: the locale encoding us-ascii is not UTF-8")
	assert.Contains(t, res.stderr, path+": Read failed at line 2:")
}

func TestRoot_InvalidLocaleEncoding(t *testing.T) {
	isolate(t, "xx_XX.BOGUS-42")
	path := testutil.WriteInput(t, "in.txt", []byte("ok"))

	res := run(t, "", "--interactive", "never", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "bogus-42")
}

func TestRoot_JSONOutput(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	path := testutil.WriteInput(t, "in.txt", []byte("€"))

	res := run(t, "", "-o", "json", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, `"codepoint":"U+20AC"`)
	assert.Contains(t, res.stdout, `"bytes":"e2 82 ac"`)
}

func TestRoot_InvalidOutput(t *testing.T) {
	isolate(t, "en_US.UTF-8")

	res := run(t, "", "-o", "xml", "-")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid output format")
}

func TestRoot_ConfigFile(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	require.NoError(t, os.WriteFile(".find-non-ascii.yaml", []byte("encoding: koi8-r\n"), 0o644))
	path := testutil.WriteInput(t, "koi8.txt", []byte{0xc1})

	res := run(t, "", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, path+":1,1: char='а' code=1072 bytes=[c1]\n", res.stdout)
}

func TestRoot_Verbose(t *testing.T) {
	isolate(t, "en_US.UTF-8")
	path := testutil.WriteInput(t, "in.txt", []byte("x"))

	res := run(t, "", "-v", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "scan finished")
}

func TestRoot_Subcommands(t *testing.T) {
	isolate(t, "en_US.UTF-8")

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"version"}, want: "find-non-ascii v" + Version},
		{args: []string{"--version"}, want: Version},
		{args: []string{"encodings"}, want: "iso-8859-15"},
		{args: []string{"config"}, want: "output: text"},
		{args: []string{"completion", "bash"}, want: "bash completion"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := run(t, "", tt.args...)
			assert.Equal(t, 0, res.code, res.stderr)
			assert.Contains(t, res.stdout, tt.want)
		})
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"config", "encoding", "interactive", "output", "color", "verbose", "watch", "watch-debounce"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %q should exist", name)
	}
	for _, name := range []string{"version", "encodings", "config", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
