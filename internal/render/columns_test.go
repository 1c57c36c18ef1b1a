package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnsEmpty(t *testing.T) {
	assert.Equal(t, "", Columns(nil, 80))
}

func TestColumnsSingleRow(t *testing.T) {
	out := Columns([]string{"aa", "bb", "cc"}, 80)

	assert.Equal(t, 1, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "aa")
	assert.Contains(t, out, "bb")
	assert.Contains(t, out, "cc")
}

func TestColumnsWraps(t *testing.T) {
	// Column width is 8 (6 + gap), so a width of 17 fits two columns.
	candidates := []string{"aaaaaa", "bbbbbb", "cccccc", "dddddd", "eeeeee"}
	out := Columns(candidates, 17)

	lines := strings.Split(out, "\n")
	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], "aaaaaa")
	assert.Contains(t, lines[0], "bbbbbb")
	assert.Contains(t, lines[2], "eeeeee")
}

func TestColumnsNarrowWidthOneColumn(t *testing.T) {
	out := Columns([]string{"longcandidate", "another"}, 4)

	lines := strings.Split(out, "\n")
	assert.Equal(t, 2, len(lines))
}

func TestColumnsStylesDirectories(t *testing.T) {
	out := Columns([]string{"src/", "main.go"}, 80)

	// The directory name survives styling, whatever the color profile.
	assert.Contains(t, out, "src/")
	assert.Contains(t, out, "main.go")
}
