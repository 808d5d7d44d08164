package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/lastrelease/internal/config"
	"github.com/oarkflow/lastrelease/internal/git/gittest"
	"github.com/oarkflow/lastrelease/internal/release"
)

// execute runs the root command with args and returns its stdout.
// Flags are reset first since cobra keeps them between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// sampleRepo returns a repository and the commits tagged v1.1.0 and
// v1.2.0-dev.
func sampleRepo(t *testing.T) (*gittest.Repo, []string) {
	t.Helper()

	r := gittest.Init(t)
	r.Commit("First")
	r.Tag("v1.0.0")
	second := r.Commit("Second")[0]
	r.Tag("v1.1.0")
	third := r.Commit("Third")[0]
	r.Tag("nightly-v9.0.0")
	r.Tag("v1.2.0-dev")

	return r, []string{second, third}
}

func TestRender(t *testing.T) {
	rel := release.Release{GitHead: "abc", GitTag: "v1.0.0", Version: "1.0.0"}

	tests := []struct {
		format string
		rel    release.Release
		want   string
	}{
		{config.FormatText, rel, "tag:     v1.0.0\nversion: 1.0.0\ncommit:  abc\n"},
		{"", release.Release{}, ""},
		{config.FormatJSON, rel, `{"gitHead":"abc","gitTag":"v1.0.0","version":"1.0.0"}` + "\n"},
		{config.FormatJSON, release.Release{}, "{}\n"},
		{config.FormatYAML, rel, "gitHead: abc\ngitTag: v1.0.0\nversion: 1.0.0\n"},
		{config.FormatYAML, release.Release{}, "{}\n"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		require.NoError(t, render(&buf, tc.rel, tc.format))
		require.Equal(t, tc.want, buf.String(), tc.format)
	}

	require.Error(t, render(&bytes.Buffer{}, rel, "xml"))
}

func TestFindLast(t *testing.T) {
	r, heads := sampleRepo(t)

	cfg := config.Default()
	cfg.Git.Dir = r.Dir
	cfg.Git.Backend = "go-git"
	cfg.Git.IgnoreTags = []string{"^nightly-", "-dev$"}

	var logged []string
	got, err := findLast(context.Background(), cfg, release.LogFunc(func(format string, args ...interface{}) {
		logged = append(logged, format)
	}))
	require.NoError(t, err)

	require.Equal(t, release.Release{GitHead: heads[0], GitTag: "v1.1.0", Version: "1.1.0"}, got)
	require.Equal(t, []string{"Found git tag %s associated with version %s"}, logged)
}

func TestFindLastNotRepository(t *testing.T) {
	cfg := config.Default()
	cfg.Git.Dir = t.TempDir()
	cfg.Git.Backend = "go-git"

	_, err := findLast(context.Background(), cfg, release.LogFunc(func(string, ...interface{}) {}))
	require.Error(t, err)
}

func TestLastCommand(t *testing.T) {
	r, _ := sampleRepo(t)

	out, err := execute(t, "last", "-C", r.Dir, "--backend", "go-git", "-o", "json", "--tag-format", "nightly-v${version}")
	require.NoError(t, err)

	var got release.Release
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "nightly-v9.0.0", got.GitTag)
	require.Equal(t, "9.0.0", got.Version)
	require.Len(t, got.GitHead, 40)
}

func TestLastCommandNotFound(t *testing.T) {
	r, _ := sampleRepo(t)

	out, err := execute(t, "last", "-C", r.Dir, "--backend", "go-git", "--tag-format", "app-${version}")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLastCommandInvalidTagFormat(t *testing.T) {
	r, _ := sampleRepo(t)

	_, err := execute(t, "last", "-C", r.Dir, "--backend", "go-git", "--tag-format", "v1")
	require.ErrorIs(t, err, release.ErrTagFormat)
}

func TestLastCommandConfigFile(t *testing.T) {
	r, heads := sampleRepo(t)

	path := filepath.Join(t.TempDir(), "lastrelease.yaml")
	_, err := execute(t, "init", "-c", path)
	require.NoError(t, err)

	out, err := execute(t, "check", "-c", path)
	require.NoError(t, err)
	require.Contains(t, out, "is valid")

	_, err = execute(t, "init", "-c", path)
	require.Error(t, err)

	out, err = execute(t, "last", "-c", path, "-C", r.Dir, "--backend", "go-git", "-o", "yaml")
	require.NoError(t, err)

	var got release.Release
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, release.Release{GitHead: heads[1], GitTag: "v1.2.0-dev", Version: "1.2.0-dev"}, got)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "lastrelease ")
}
