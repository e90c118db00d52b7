package style_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/dotsnap/pkg/style"
	"github.com/stretchr/testify/assert"
)

// forceStyled pins the rendering path for the duration of a test.
func forceStyled(t *testing.T, styled bool) {
	t.Helper()
	orig := style.Styled
	style.Styled = func() bool { return styled }
	t.Cleanup(func() { style.Styled = orig })
}

func TestPlainOutput(t *testing.T) {
	forceStyled(t, false)

	assert.Equal(t, "--- DOTFILES ---", style.SectionHeader("DOTFILES"))
	assert.Equal(t, "/a -> /b", style.CopyInfo("/a", "/b"))
}

func TestStyledSectionHeader(t *testing.T) {
	forceStyled(t, true)

	out := style.SectionHeader("DOTFILES")
	assert.Contains(t, out, "DOTFILES")
	// The styled header is a bordered, multi-line box.
	assert.NotEqual(t, "--- DOTFILES ---", out)
	assert.Contains(t, out, "\n")
	assert.Contains(t, out, "─")
}

func TestStyledCopyInfo(t *testing.T) {
	forceStyled(t, true)

	out := style.CopyInfo("/home/user/.vimrc", "/backup/dotfiles/.vimrc")
	assert.True(t, strings.HasPrefix(out, "/home/user/.vimrc "))
	assert.Contains(t, out, "->")
	assert.True(t, strings.HasSuffix(out, " /backup/dotfiles/.vimrc"))
}

func TestNoColorDisablesStyling(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, style.Styled())
}
