package release

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"
)

func TestCompileTagFormat(t *testing.T) {
	for _, format := range []string{"", "v", "v1.0.0", "${version}-${version}", "$version"} {
		_, err := CompileTagFormat(format)
		require.ErrorIs(t, err, ErrTagFormat, format)
	}

	f, err := CompileTagFormat("v${version}")
	require.NoError(t, err)
	require.Equal(t, "v${version}", f.String())
}

func TestTagFormatVersion(t *testing.T) {
	tests := []struct {
		format string
		tag    string
		want   string
	}{
		{"v${version}", "v1.0.0", "1.0.0"},
		{"v${version}", "v1.2.3-rc.1+build.5", "1.2.3-rc.1+build.5"},
		{"${version}", "1.0.0", "1.0.0"},
		{"foo-${version}-bar", "foo-1.0.0-bar", "1.0.0"},
		{"foo-v${version}-bar", "foo-v1.0.0-bar", "1.0.0"},
		{"(.+)/${version}/(a-z)", "(.+)/1.0.0/(a-z)", "1.0.0"},
		{"2.0.0-${version}-bar.1", "2.0.0-1.0.0-bar.1", "1.0.0"},
		{"[${version}]", "[0.1.0]", "0.1.0"},
		{"pkg/*/${version}", "pkg/*/3.4.5", "3.4.5"},
		{"${version}", "2.0.0-1.0.0-bar.1", "2.0.0-1.0.0-bar.1"},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			f, err := CompileTagFormat(tc.format)
			require.NoError(t, err)

			v, ok := f.Version(tc.tag)
			require.True(t, ok)
			require.Equal(t, tc.want, v.String())
		})
	}
}

func TestTagFormatVersionRejects(t *testing.T) {
	tests := []struct {
		format string
		tag    string
	}{
		{"v${version}", "foo"},
		{"v${version}", "v2.0.x"},
		{"v${version}", "v3.0"},
		{"v${version}", "v01.0.0"},
		{"v${version}", "v1.0.0-"},
		{"v${version}", "xv1.0.0"},
		{"v${version}", "v1.0.0x"},
		{"v${version}", "1.0.0"},
		{"(.+)/${version}/(a-z)", "anything/1.0.0/b"},
		{"foo-${version}-bar", "foo-1.0.0-baz"},
		{"a.${version}", "ab1.0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			f, err := CompileTagFormat(tc.format)
			require.NoError(t, err)

			_, ok := f.Version(tc.tag)
			require.False(t, ok)
		})
	}
}

func TestTagFormatTag(t *testing.T) {
	f, err := CompileTagFormat("(.+)/${version}/(a-z)")
	require.NoError(t, err)

	tag := f.Tag(semver.MustParse("1.2.3"))
	require.Equal(t, "(.+)/1.2.3/(a-z)", tag)

	v, ok := f.Version(tag)
	require.True(t, ok)
	require.Equal(t, "1.2.3", v.String())
}
