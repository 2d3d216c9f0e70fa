package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

func dispatch(d *Dispatcher, lines ...string) {
	for _, line := range lines {
		d.Dispatch(line)
	}
}

func TestDispatcher_StatusEvent(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: status",
		`data: {"message":"Analyzing job description..."}`,
	)

	assert.Equal(t, "Analyzing job description...", acc.StatusMessage())
}

func TestDispatcher_QuestionEvent(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: question",
		`data: {"id":"q1","category":"technical","question":"Explain X","answer":"Y"}`,
	)

	technical := acc.Snapshot().Results.Get(types.CategoryTechnical)
	require.Len(t, technical, 1)
	assert.Equal(t, "q1", technical[0].ID)
	assert.Equal(t, "Explain X", technical[0].Question)
	assert.Equal(t, "Y", technical[0].Answer)
}

func TestDispatcher_JobAnalysisOverwrites(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: job_analysis",
		`data: {"company_name":"Acme","job_title":"SRE"}`,
		"event: job_analysis",
		`data: {"company_name":"Acme","job_title":"Staff SRE","skills":["Go"]}`,
	)

	ja := acc.Snapshot().Results.JobAnalysis
	require.NotNil(t, ja)
	assert.Equal(t, "Staff SRE", ja.JobTitle)
	assert.Equal(t, []string{"Go"}, ja.Skills)
}

func TestDispatcher_DataWithoutEventIgnored(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d, `data: {"id":"q1","category":"technical"}`)

	assert.Equal(t, 0, acc.Snapshot().Results.Count())
}

func TestDispatcher_EventNameConsumedOnce(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: question",
		`data: {"id":"q1","category":"technical"}`,
		// No fresh event: line, so this data: line must not append.
		`data: {"id":"q2","category":"technical"}`,
	)

	assert.Len(t, acc.Snapshot().Results.Get(types.CategoryTechnical), 1)
}

func TestDispatcher_MalformedJSONSkippedNonFatally(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: question",
		`data: {"id":"q1", not valid json`,
		// The pending name was cleared by the failed frame; subsequent
		// well-formed frames still apply.
		"event: question",
		`data: {"id":"q2","category":"behavioral"}`,
	)

	results := acc.Snapshot().Results
	assert.Equal(t, 1, results.Count())
	assert.Equal(t, "q2", results.Get(types.CategoryBehavioral)[0].ID)
}

func TestDispatcher_UnrecognizedEventIgnored(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"event: heartbeat",
		`data: {"ts":123}`,
	)

	assert.Equal(t, 0, acc.Snapshot().Results.Count())
	assert.Equal(t, StatusIdle, acc.Status())
}

func TestDispatcher_BlankAndUnknownLinesIgnored(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d,
		"",
		": keepalive comment",
		"retry: 500",
		"event: status",
		"",
		`data: {"message":"still working"}`,
	)

	// The blank line between event: and data: does not clear the pending name.
	assert.Equal(t, "still working", acc.StatusMessage())
}

func TestDispatcher_CompleteEvent(t *testing.T) {
	acc := NewAccumulator()
	d := NewDispatcher(acc, nil)

	dispatch(d, "event: complete", "data: {}")

	assert.Equal(t, StatusComplete, acc.Status())
}

func TestDispatcher_ErrorEventSurfacedWithoutTerminating(t *testing.T) {
	acc := NewAccumulator()
	acc.SetStatus(StatusStreaming)

	var notices []string
	d := NewDispatcher(acc, func(msg string) { notices = append(notices, msg) })

	dispatch(d,
		"event: error",
		`data: {"message":"web search unavailable"}`,
		"event: question",
		`data: {"id":"q1","category":"technical"}`,
	)

	assert.Equal(t, []string{"web search unavailable"}, notices)
	assert.Equal(t, StatusStreaming, acc.Status())
	assert.Equal(t, 1, acc.Snapshot().Results.Count())
}
