package section

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hazadus/go-chapterplay/internal/logger"
)

type change struct {
	chapter  int
	expanded bool
}

func newRecorded() (*Coordinator, *[]change) {
	c := NewCoordinator(logger.NewTestLogger())
	var changes []change
	c.OnChange(func(chapter int, expanded bool) {
		changes = append(changes, change{chapter, expanded})
	})
	return c, &changes
}

func TestToggleIsIndependent(t *testing.T) {
	c, changes := newRecorded()

	assert.True(t, c.Toggle(1))
	assert.True(t, c.Toggle(2))
	assert.False(t, c.Toggle(1))

	assert.False(t, c.Expanded(1))
	assert.True(t, c.Expanded(2))
	assert.False(t, c.Expanded(3))
	assert.Equal(t, []change{{1, true}, {2, true}, {1, false}}, *changes)
}

func TestSetExpandedIsIdempotent(t *testing.T) {
	once, onceChanges := newRecorded()
	once.SetExpanded(4, true)

	twice, twiceChanges := newRecorded()
	twice.SetExpanded(4, true)
	twice.SetExpanded(4, true)

	assert.Equal(t, once.ExpandedChapters(), twice.ExpandedChapters())
	assert.Equal(t, *onceChanges, *twiceChanges)

	twice.SetExpanded(5, false)
	assert.Len(t, *twiceChanges, 1, "свернутая секция не уведомляет повторно")
}

func TestCollapseAll(t *testing.T) {
	c, changes := newRecorded()
	c.SetExpanded(3, true)
	c.SetExpanded(1, true)
	assert.Equal(t, []int{1, 3}, c.ExpandedChapters())

	c.CollapseAll()
	assert.Empty(t, c.ExpandedChapters())
	assert.Equal(t, []change{{3, true}, {1, true}, {1, false}, {3, false}}, *changes)
}
