package domain_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquid0/Prompt-Heatmap/internal/modules/checklist/domain"
	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

type fixedRand int

func (f fixedRand) IntN(int) int { return int(f) }

const prompts = "- [ ] Write about rain\n- [x] Write about fog\n- [ ] Write about silence"

func TestPickTicksDrawnLine(t *testing.T) {
	t.Parallel()
	sel, err := domain.Pick(prompts, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, domain.Entry{LineIndex: 0, Label: "Write about rain"}, sel.Entry)
	assert.Equal(t, "- [x] Write about rain\n- [x] Write about fog\n- [ ] Write about silence", sel.UpdatedText)

	sel, err = domain.Pick(prompts, fixedRand(1))
	require.NoError(t, err)
	assert.Equal(t, domain.Entry{LineIndex: 2, Label: "Write about silence"}, sel.Entry)
	assert.Equal(t, "- [ ] Write about rain\n- [x] Write about fog\n- [x] Write about silence", sel.UpdatedText)
}

func TestEligibleIndices(t *testing.T) {
	t.Parallel()
	entries := domain.Eligible(prompts)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].LineIndex)
	assert.Equal(t, 2, entries[1].LineIndex)
}

func TestEligibleSkipsBlankLabels(t *testing.T) {
	t.Parallel()
	entries := domain.Eligible("- [ ]\n- [ ] Write about rain\n- [ ]   \t")
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Entry{LineIndex: 1, Label: "Write about rain"}, entries[0])

	sel, err := domain.Pick("- [ ]\n- [ ] Write about rain", fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, "Write about rain", sel.Entry.Label)
}

func TestPickFailsWithoutPendingLines(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		"",
		"# Prompts\n\nnothing to see",
		"- [x] done\n- [X] also done",
		"- [ ]\n- [ ]   ",
		"Remember to tick - [ ] boxes like this one",
	} {
		_, err := domain.Pick(text, fixedRand(0))
		assert.True(t, errors.Is(err, apperrors.ErrNoEligibleEntries), "text %q: %v", text, err)
	}
}

func TestClassifyRecognisesOnlyStrictCheckboxes(t *testing.T) {
	t.Parallel()
	text := strings.Join([]string{
		"# Prompts",
		"  - [ ] indented prompt  ",
		"[ ] bare bracket",
		"- [X] upper done",
		"* [ ] star bullet",
		"- [] empty brackets",
		"- [-] cancelled",
		"text with - [ ] inside",
		"- [ ]no space label",
	}, "\n")
	lines := domain.Classify(text)
	require.Len(t, lines, 9)

	assert.Equal(t, domain.KindOther, lines[0].Kind)
	assert.Equal(t, domain.KindCheckbox, lines[1].Kind)
	assert.Equal(t, "indented prompt", lines[1].Label)
	assert.Equal(t, domain.StatusPending, lines[1].Status)
	assert.Equal(t, domain.KindCheckbox, lines[2].Kind)
	assert.Equal(t, "bare bracket", lines[2].Label)
	assert.Equal(t, domain.StatusDone, lines[3].Status)
	for _, i := range []int{4, 5, 6, 7} {
		assert.Equal(t, domain.KindOther, lines[i].Kind, "line %d", i)
	}
	assert.Equal(t, "no space label", lines[8].Label)
}

func TestPickPreservesOtherBytes(t *testing.T) {
	t.Parallel()
	text := "# Prompts\r\n\r\n\t- [ ]  Describe   a door \r\nnotes - [ ] here\r\n"
	sel, err := domain.Pick(text, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, "Describe   a door", sel.Entry.Label)
	assert.Equal(t, "# Prompts\r\n\r\n\t- [x]  Describe   a door \r\nnotes - [ ] here\r\n", sel.UpdatedText)
}

func TestPickChangesExactlyOneLineAndShrinksEligibleSet(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		switch i % 4 {
		case 0:
			b.WriteString("- [x] done prompt\n")
		case 3:
			b.WriteString("a paragraph with [ ] brackets\n")
		default:
			b.WriteString("- [ ] prompt number " + string(rune('A'+i)) + "\n")
		}
	}
	text := b.String()
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 5; round++ {
		before := domain.Eligible(text)
		sel, err := domain.Pick(text, rng)
		require.NoError(t, err)

		oldLines := strings.Split(text, "\n")
		newLines := strings.Split(sel.UpdatedText, "\n")
		require.Len(t, newLines, len(oldLines))
		changed := 0
		for i := range oldLines {
			if oldLines[i] != newLines[i] {
				changed++
				assert.Equal(t, sel.Entry.LineIndex, i)
			}
		}
		assert.Equal(t, 1, changed)

		after := domain.Eligible(sel.UpdatedText)
		require.Len(t, after, len(before)-1)
		for _, e := range after {
			assert.NotEqual(t, sel.Entry.LineIndex, e.LineIndex)
		}
		assert.Equal(t, domain.StatusDone, domain.Classify(sel.UpdatedText)[sel.Entry.LineIndex].Status)
		text = sel.UpdatedText
	}
}

func TestPickIsUniform(t *testing.T) {
	t.Parallel()
	text := "- [ ] a\n- [ ] b\n- [ ] c\n- [ ] d"
	rng := rand.New(rand.NewPCG(1, 2))
	counts := map[string]int{}
	const draws = 8000
	for i := 0; i < draws; i++ {
		sel, err := domain.Pick(text, rng)
		require.NoError(t, err)
		counts[sel.Entry.Label]++
	}
	for _, label := range []string{"a", "b", "c", "d"} {
		assert.InDelta(t, draws/4, counts[label], draws*0.05, "label %s", label)
	}
}

func TestPickRejectsOutOfRangeRandom(t *testing.T) {
	t.Parallel()
	_, err := domain.Pick(prompts, fixedRand(5))
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	stats := domain.Summarize("# P\n- [ ] a\n- [ ]\n- [x] b\nplain")
	assert.Equal(t, domain.Stats{Lines: 5, Pending: 2, Done: 1, Eligible: 1}, stats)
}
