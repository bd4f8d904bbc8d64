package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/record/domain"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

const key = "promptsAnswered"

func TestApplyCreatesRecord(t *testing.T) {
	t.Parallel()
	merge, err := domain.Apply(nil, "Write about rain", key)
	require.NoError(t, err)
	assert.True(t, merge.IsNew)
	assert.Equal(t, 1, merge.Answered)
	assert.Equal(t, "---\npromptsAnswered: 1\n---\n\n# Writing Prompt\n\n***\n\nWrite about rain\n\n***\n", merge.Text)

	rec, err := domain.Parse(merge.Text, key)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Answered)
	assert.Equal(t, []string{"Write about rain"}, rec.Labels)
}

func TestApplyAppendsToExistingRecord(t *testing.T) {
	t.Parallel()
	existing := "---\npromptsAnswered: 3\n---\n\n# Writing Prompt\n\n***\n\nWrite about rain\n\n***\n"
	merge, err := domain.Apply(&existing, "Write about fog", key)
	require.NoError(t, err)
	assert.False(t, merge.IsNew)
	assert.Equal(t, 4, merge.Answered)
	assert.Equal(t,
		"---\npromptsAnswered: 4\n---\n\n# Writing Prompt\n\n***\n\nWrite about rain\n\n***\n\n***\n\nWrite about fog\n\n***\n",
		merge.Text)

	rec, err := domain.Parse(merge.Text, key)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Answered)
	assert.Equal(t, []string{"Write about rain", "Write about fog"}, rec.Labels)
}

func TestAppendKeepsSurroundingBytes(t *testing.T) {
	t.Parallel()
	existing := "---\ntitle: Day één\npromptsAnswered: 9   # keep me\ntags: [a, b]\n---\nfree text without newline"
	merge, err := domain.Apply(&existing, "Describe a door", key)
	require.NoError(t, err)
	assert.Equal(t,
		"---\ntitle: Day één\npromptsAnswered: 10   # keep me\ntags: [a, b]\n---\nfree text without newline\n\n***\n\nDescribe a door\n\n***\n",
		merge.Text)
}

func TestZeroCounterIsAccepted(t *testing.T) {
	t.Parallel()
	existing := "---\npromptsAnswered: 0\n---\n"
	merge, err := domain.Apply(&existing, "x", key)
	require.NoError(t, err)
	assert.Equal(t, 1, merge.Answered)
	assert.True(t, strings.HasPrefix(merge.Text, "---\npromptsAnswered: 1\n---\n"))
}

func TestMalformedRecords(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not a number":   "---\npromptsAnswered: N/A\n---\n",
		"quoted":         "---\npromptsAnswered: '3'\n---\n",
		"float":          "---\npromptsAnswered: 3.5\n---\n",
		"negative":       "---\npromptsAnswered: -2\n---\n",
		"hex":            "---\npromptsAnswered: 0x1F\n---\n",
		"list":           "---\npromptsAnswered: [1]\n---\n",
		"missing field":  "---\nother: 3\n---\n",
		"empty header":   "---\n---\nbody",
		"no frontmatter": "# Writing Prompt\n\npromptsAnswered: 3\n",
		"unclosed":       "---\npromptsAnswered: 3\n",
		"broken yaml":    "---\npromptsAnswered: [3\n---\n",
	}
	for name, text := range cases {
		before := text
		_, err := domain.Apply(&text, "Write about fog", key)
		assert.True(t, errors.Is(err, apperrors.ErrMalformedRecord), "%s: %v", name, err)
		assert.Equal(t, before, text, name)
	}
}

func TestApplyRejectsEmptyLabel(t *testing.T) {
	t.Parallel()
	_, err := domain.Apply(nil, "  ", key)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestParseRecoversLegacyLayout(t *testing.T) {
	t.Parallel()
	legacy := "---\npromptsAnswered: 2\n---\n\n# Writing Prompt\n\nWrite about rain\n\n***\n\n" +
		"\n\t\n***\n\n\nWrite about fog\n\n***\n\n\n\n"
	rec, err := domain.Parse(legacy, key)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Answered)
	assert.Equal(t, []string{"Write about rain", "Write about fog"}, rec.Labels)
}

func TestBlocksIgnoresUnbracketedContent(t *testing.T) {
	t.Parallel()
	body := "intro paragraph\n\n***\n\nfirst\n\n***\n\nmy answer\n\n***\n\none\n\ntwo\n\n***\n\n***\n\nsecond\n\n***\n"
	assert.Equal(t, []string{"first", "second"}, domain.Blocks(body))
}

func TestParseKeepsMarkdownShapedLabels(t *testing.T) {
	t.Parallel()
	labels := []string{
		"Write about *rain*",
		"1. Write a haiku",
		"# Rain",
		"> a quote",
		"- nested",
		"+ plus",
		"<div>x</div>",
	}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			t.Parallel()
			created, err := domain.Apply(nil, label, key)
			require.NoError(t, err)
			rec, err := domain.Parse(created.Text, key)
			require.NoError(t, err)
			assert.Equal(t, []string{label}, rec.Labels)

			appended, err := domain.Apply(&created.Text, "Write about fog", key)
			require.NoError(t, err)
			rec, err = domain.Parse(appended.Text, key)
			require.NoError(t, err)
			assert.Equal(t, 2, rec.Answered)
			assert.Equal(t, []string{label, "Write about fog"}, rec.Labels)
		})
	}
}

func TestBuildHeatmap(t *testing.T) {
	t.Parallel()
	end := time.Date(2026, 10, 17, 21, 30, 0, 0, time.Local)
	counts := map[string]int{
		"2026-10-17": 2,
		"2026-10-16": 1,
		"2026-10-15": 4,
		"2026-10-13": 1,
		"2026-10-01": 5,
	}
	h := domain.BuildHeatmap(end, 2, counts)

	require.Len(t, h.Weeks, 2)
	assert.Equal(t, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), h.Start)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), h.End)
	assert.Equal(t, time.Monday, h.Weeks[1][0].Day.Weekday())
	assert.Equal(t, 4, h.Max)
	assert.Equal(t, 8, h.Total)
	assert.Equal(t, 4, h.ActiveDays)
	assert.Equal(t, 3, h.Streak)

	sat := h.Weeks[1][5]
	assert.Equal(t, 2, sat.Count)
	assert.Equal(t, 2, sat.Level)
	assert.Equal(t, 4, h.Weeks[1][3].Level)
	assert.Equal(t, 1, h.Weeks[1][1].Level)
	assert.False(t, h.Weeks[1][6].InRange)
	assert.Equal(t, 0, h.Weeks[1][6].Count)
}

func TestStreakStartsYesterdayWhenTodayIsEmpty(t *testing.T) {
	t.Parallel()
	end := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{"2026-10-16": 1, "2026-10-15": 1, "2026-10-13": 3}
	assert.Equal(t, 2, domain.Streak(end, counts))
	assert.Equal(t, 0, domain.Streak(end, map[string]int{}))
}

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, domain.Level(0, 5))
	assert.Equal(t, 1, domain.Level(1, 8))
	assert.Equal(t, 2, domain.Level(3, 8))
	assert.Equal(t, 4, domain.Level(8, 8))
	assert.Equal(t, 4, domain.Level(1, 1))
}
