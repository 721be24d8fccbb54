package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNestedNodes(t *testing.T) {
	root := NewNode("")
	first := NewNode("Chapter 1")
	track := NewNode("Track 01")
	track.Append(NewNode("▶ 0:00 / 1:30"))
	first.Append(track)
	second := NewNode("Chapter 2")
	root.Append(first, second)

	expected := "Chapter 1\n  Track 01\n    ▶ 0:00 / 1:30\nChapter 2"
	assert.Equal(t, expected, root.Render())
}

func TestHiddenNodeHidesSubtree(t *testing.T) {
	root := NewNode("")
	section := NewNode("Chapter 1")
	section.Append(NewNode("Track 01"))
	root.Append(section, NewNode("Chapter 2"))

	section.SetVisible(false)
	assert.Equal(t, []string{"Chapter 2"}, root.Lines())
	assert.False(t, section.Visible())

	section.SetVisible(true)
	section.SetLabel("Chapter 1 (2)")
	assert.Equal(t, []string{"Chapter 1 (2)", "  Track 01", "Chapter 2"}, root.Lines())
}

func TestMultilineLabelIsIndented(t *testing.T) {
	root := NewNode("head")
	root.Append(NewNode("a\nb"))

	assert.Equal(t, "head\n  a\n  b", root.Render())
	assert.Len(t, root.Children(), 1)
}
