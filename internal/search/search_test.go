package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazadus/go-chapterplay/internal/catalog"
	"github.com/hazadus/go-chapterplay/internal/logger"
	"github.com/hazadus/go-chapterplay/internal/section"
)

func scenarioChapters() []catalog.Chapter {
	return catalog.ParseAndGroup([]string{"1-01.mp3", "1-02.mp3", "2-01.mp3"})
}

func TestApplyMatchesSingleChapter(t *testing.T) {
	sections := section.NewCoordinator(logger.NewTestLogger())
	sections.SetExpanded(1, true)

	res := Apply("2-0", scenarioChapters(), sections)

	ch1, ok := res.Section(1)
	require.True(t, ok)
	assert.False(t, ch1.Visible)
	assert.False(t, ch1.Expanded)
	assert.Equal(t, 0, ch1.Matches)

	ch2, ok := res.Section(2)
	require.True(t, ok)
	assert.True(t, ch2.Visible)
	assert.True(t, ch2.Expanded)
	assert.Equal(t, 1, ch2.Matches)

	assert.False(t, sections.Expanded(1))
	assert.True(t, sections.Expanded(2))
	assert.True(t, res.TrackVisible("2-01"))
	assert.False(t, res.TrackVisible("1-01"))
	assert.True(t, res.HasAnyMatch)
	assert.False(t, res.ShowEmptyState)
}

func TestApplyEmptyQueryCollapsesEverything(t *testing.T) {
	sections := section.NewCoordinator(logger.NewTestLogger())
	sections.SetExpanded(2, true)

	for _, q := range []string{"", "   "} {
		res := Apply(q, scenarioChapters(), sections)

		for _, s := range res.Sections {
			assert.True(t, s.Visible)
			assert.False(t, s.Expanded)
		}
		for _, key := range []string{"1-01", "1-02", "2-01"} {
			assert.True(t, res.TrackVisible(key), key)
		}
		assert.Empty(t, sections.ExpandedChapters())
		assert.False(t, res.ShowEmptyState)
	}
}

func TestApplyNoMatches(t *testing.T) {
	sections := section.NewCoordinator(logger.NewTestLogger())
	sections.SetExpanded(1, true)

	res := Apply("9-99", scenarioChapters(), sections)

	for _, s := range res.Sections {
		assert.False(t, s.Visible)
		assert.False(t, s.Expanded)
	}
	assert.Empty(t, sections.ExpandedChapters())
	assert.False(t, res.HasAnyMatch)
	assert.True(t, res.ShowEmptyState)
}

func TestApplyNormalizesQuery(t *testing.T) {
	res := Apply("  1-0 ", scenarioChapters(), nil)

	assert.Equal(t, "1-0", res.Query)
	assert.True(t, res.TrackVisible("1-01"))
	assert.True(t, res.TrackVisible("1-02"))
	assert.False(t, res.TrackVisible("2-01"))

	ch1, _ := res.Section(1)
	assert.Equal(t, 2, ch1.Matches)
}

func TestApplyOnEmptyCatalog(t *testing.T) {
	res := Apply("", nil, nil)
	assert.False(t, res.HasAnyMatch)
	assert.False(t, res.ShowEmptyState)

	res = Apply("1", nil, nil)
	assert.True(t, res.ShowEmptyState)
}
