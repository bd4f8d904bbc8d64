package heatmap_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recorddto "github.com/Aquid0/Prompt-Heatmap/internal/modules/record/dto"
	"github.com/Aquid0/Prompt-Heatmap/internal/ui/views/heatmap"
)

func twoWeeks() recorddto.HeatmapOutput {
	start := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	out := recorddto.HeatmapOutput{
		Start:      start,
		End:        time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		Weeks:      make([][7]recorddto.HeatmapCell, 2),
		Max:        2,
		Total:      3,
		ActiveDays: 2,
		Streak:     1,
	}
	for w := range out.Weeks {
		for d := 0; d < 7; d++ {
			out.Weeks[w][d] = recorddto.HeatmapCell{Date: start.AddDate(0, 0, w*7+d), InRange: true}
		}
	}
	out.Weeks[0][0].Count, out.Weeks[0][0].Level = 2, 2
	out.Weeks[1][5].Count, out.Weeks[1][5].Level = 1, 4
	out.Weeks[1][6].InRange = false
	return out
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()
	lines := strings.Split(heatmap.Render(twoWeeks(), false), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "    Sep", lines[0])
	assert.Equal(t, "Mon ▒ · ", lines[1])
	assert.Equal(t, "Tue · · ", lines[2])
	assert.Equal(t, "Sat · █ ", lines[6])
	assert.Equal(t, "Sun ·   ", lines[7])
	assert.Equal(t, "", lines[8])
	assert.Equal(t, "3 prompts on 2 days · best day 2 · streak 1 day · 28 Sep 2026 to 17 Oct 2026", lines[9])
	assert.Equal(t, "less · ░ ▒ ▓ █ more", lines[10])
	assert.Equal(t, "", lines[11])
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "no data\n", heatmap.Render(recorddto.HeatmapOutput{}, false))
}

func TestSummaryPluralisesStreak(t *testing.T) {
	t.Parallel()
	out := twoWeeks()
	out.Streak = 3
	assert.Contains(t, heatmap.Summary(out), "streak 3 days")
}
