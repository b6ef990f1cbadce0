package projection

import (
	"testing"
	"time"

	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/stretchr/testify/require"
)

func TestTimeline_Append_KeepsArrivalOrder(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Replace(1, nil)

	first := domain.Message{ID: 10, ThreadID: 1, Content: "Hello Bob", Timestamp: time.Now()}
	second := domain.Message{ID: 9, ThreadID: 1, Content: "Hi Alice", Timestamp: time.Now().Add(-time.Second)}

	req.True(timeline.Append(first))
	req.True(timeline.Append(second))

	// Arrival order wins over ids and timestamps
	req.Len(timeline.Messages, 2)
	req.Equal("Hello Bob", timeline.Messages[0].Content)
	req.Equal("Hi Alice", timeline.Messages[1].Content)
}

func TestTimeline_Append_IgnoresOtherThreadsAndDuplicates(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Replace(1, []domain.Message{{ID: 1, ThreadID: 1, Content: "history"}})

	req.False(timeline.Append(domain.Message{ID: 2, ThreadID: 2, Content: "elsewhere"}))
	req.False(timeline.Append(domain.Message{ID: 1, ThreadID: 1, Content: "history"}))
	req.Len(timeline.Messages, 1)
}

func TestTimeline_Replace_DoesNotMerge(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Replace(1, []domain.Message{{ID: 1, ThreadID: 1}, {ID: 2, ThreadID: 1}})

	history := []domain.Message{{ID: 7, ThreadID: 2}}
	timeline.Replace(2, history)
	history[0].Content = "mutated by caller"

	req.Equal(domain.ThreadID(2), timeline.ThreadID)
	req.Len(timeline.Messages, 1)
	req.Empty(timeline.Messages[0].Content, "the timeline owns its copy")

	snapshot := timeline.Snapshot()
	snapshot[0].Content = "mutated snapshot"
	req.Empty(timeline.Messages[0].Content)

	timeline.Reset()
	req.Empty(timeline.Messages)
	req.Zero(timeline.ThreadID)
}
