package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupIndexFallsBackToFirstMember(t *testing.T) {
	grp := &Group{ID: 9, Index: -1, Members: []Item{{ID: 3, Index: 3, GroupID: 9}, {ID: 4, Index: 4, GroupID: 9}}}
	e := Entity{Group: grp}

	assert.Equal(t, 3, ActiveIndex(e))
	assert.Equal(t, 3, OverIndex(MustParse("group:9"), e, Layout{}))
	assert.Equal(t, 3, OverIndex(MustParse("group-separator:9"), e, Layout{}))
	assert.Equal(t, 5, groupTailTarget(*grp, Direction{Up: true}))
	assert.Equal(t, 4, groupTailTarget(*grp, Direction{Up: false}))
}

func TestGroupIndexKnown(t *testing.T) {
	grp := &Group{ID: 9, Index: 6, Members: []Item{{ID: 3, Index: 6, GroupID: 9}}}
	assert.Equal(t, 6, OverIndex(MustParse("group:9"), Entity{Group: grp}, Layout{}))
	assert.Equal(t, -1, ActiveIndex(Entity{}))
}
