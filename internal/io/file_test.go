package ioutils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExt(t *testing.T) {
	tests := []struct {
		path string
		base string
		ext  string
	}{
		{"/music/song.flac", "song", "flac"},
		{"song.MP3", "song", "MP3"},
		{"live.2001.ogg", "live.2001", "ogg"},
		{"README", "README", ""},
		{".hidden", ".hidden", ""},
		{"dir.d/track", "track", ""},
		{"trailing.", "trailing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			base, ext := SplitExt(tt.path)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/music", "song.mp3"), OutputPath("/music", "", "song", "mp3"))
	assert.Equal(t, filepath.Join("out", "new-song.ogg"), OutputPath("out", "new-", "song", "ogg"))
	assert.Equal(t, "song.wav", OutputPath("", "", "song", "wav"))
}

func TestExistsAndEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.False(t, Exists(dir))

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(""))
	assert.True(t, Exists(dir))

	file := filepath.Join(dir, "x.wav")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.True(t, Exists(file))
}

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(song, []byte("audio"), 0o644))
	link := filepath.Join(dir, "link.mp3")
	require.NoError(t, os.Symlink(song, link))
	other := filepath.Join(dir, "other.mp3")
	require.NoError(t, os.WriteFile(other, []byte("audio"), 0o644))

	assert.True(t, SameFile(song, song))
	assert.True(t, SameFile(song, filepath.Join(dir, ".", "song.mp3")))
	assert.True(t, SameFile(song, link))
	assert.False(t, SameFile(song, other))
	assert.False(t, SameFile(song, filepath.Join(dir, "song.flac")))
	assert.True(t, SameFile(filepath.Join(dir, "new.mp3"), filepath.Join(dir, "x", "..", "new.mp3")))
}

func TestAskOverwrite(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			var out bytes.Buffer
			got := AskOverwrite(strings.NewReader(tt.answer), &out, "song.mp3")

			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "File 'song.mp3' exists. Overwrite? [y/N] ")
		})
	}
}

func TestAskOverwrite_SharedReader(t *testing.T) {
	in := strings.NewReader("y\nn\nyes\n")
	var out bytes.Buffer

	assert.True(t, AskOverwrite(in, &out, "a.mp3"))
	assert.False(t, AskOverwrite(in, &out, "b.mp3"))
	assert.True(t, AskOverwrite(in, &out, "c.mp3"))
	assert.False(t, AskOverwrite(in, &out, "d.mp3"))
}
