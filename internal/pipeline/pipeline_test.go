package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/orator/internal/domain"
	"github.com/davidbz/orator/internal/mocks"
	"github.com/davidbz/orator/internal/pipeline"
	"github.com/davidbz/orator/internal/prompt"
)

func echoStage(name string) pipeline.Stage {
	return pipeline.Stage{
		Name:  name,
		Model: "test-model",
		Build: func(input string) prompt.Prompt {
			return prompt.Prompt{System: name, User: "input: " + input}
		},
	}
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ map[string]interface{}) {
	p.events = append(p.events, eventType)
}

func TestRunner_Run_FeedsOutputsForward(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.OnSystem("first").Return(mocks.Reply("one"), nil).Once()
	completer.OnSystem("second").Return(mocks.Reply("two"), nil).Once()
	completer.OnSystem("third").Return(mocks.Reply("three"), nil).Once()

	runner := pipeline.NewRunner(completer, 0, nil)

	result, err := runner.Run(context.Background(), "seed",
		echoStage("first"), echoStage("second"), echoStage("third"))

	require.NoError(t, err)
	require.Equal(t, "three", result.Output())
	require.False(t, result.Degraded())
	require.Equal(t, []pipeline.StageResult{
		{Name: "first", Output: "one"},
		{Name: "second", Output: "two"},
		{Name: "third", Output: "three"},
	}, result.Stages)

	requests := completer.Requests()
	require.Len(t, requests, 3)
	require.Equal(t, "input: seed", requests[0].Messages[1].Content)
	require.Equal(t, "input: one", requests[1].Messages[1].Content)
	require.Equal(t, "input: two", requests[2].Messages[1].Content)
}

func TestRunner_Run_AppliesPostAndTemperature(t *testing.T) {
	completer := mocks.NewCompleter(t)
	completer.On("CompleteByModel", mock.Anything, mock.MatchedBy(func(req *domain.CompletionRequest) bool {
		return req.Model == "test-model" && req.Temperature == 0.3
	})).Return(mocks.Reply("  EN \n"), nil).Once()

	stage := echoStage("detect")
	stage.Post = func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

	result, err := pipeline.NewRunner(completer, 0.3, nil).Run(context.Background(), "", stage)

	require.NoError(t, err)
	require.Equal(t, "en", result.Output())
}

func TestRunner_Run_StopsOnFirstError(t *testing.T) {
	upstream := domain.Upstream("completion failed", errors.New("rate limited"))

	completer := mocks.NewCompleter(t)
	completer.OnSystem("first").Return(mocks.Reply("one"), nil).Once()
	completer.OnSystem("second").Return(nil, upstream).Once()

	result, err := pipeline.NewRunner(completer, 0, nil).Run(context.Background(), "seed",
		echoStage("first"), echoStage("second"), echoStage("third"))

	require.Error(t, err)
	require.Nil(t, result)
	require.Contains(t, err.Error(), "stage second")
	require.Equal(t, domain.KindUpstream, domain.KindOf(err))
	require.Len(t, completer.Requests(), 2)
}

func TestRunner_Run_FallbackPassesInputThrough(t *testing.T) {
	events := &recordingPublisher{}

	completer := mocks.NewCompleter(t)
	completer.OnSystem("translate").Return(mocks.Reply("english text"), nil).Once()
	completer.OnSystem("correct").Return(nil, errors.New("model overloaded")).Once()
	completer.OnSystem("back").Return(mocks.Reply("hindi text"), nil).Once()

	correct := echoStage("correct")
	correct.Fallback = true

	result, err := pipeline.NewRunner(completer, 0, events).Run(context.Background(), "seed",
		echoStage("translate"), correct, echoStage("back"))

	require.NoError(t, err)
	require.True(t, result.Degraded())
	require.Equal(t, pipeline.StageResult{Name: "correct", Output: "english text", Degraded: true}, result.Stages[1])
	require.Equal(t, "input: english text", completer.Requests()[2].Messages[1].Content)
	require.Equal(t, []string{"pipeline.stage.degraded"}, events.events)
}

func TestRunner_Run_FallbackDoesNotMaskCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completer := mocks.NewCompleter(t)
	completer.OnSystem("correct").Return(nil, context.Canceled).Once()

	stage := echoStage("correct")
	stage.Fallback = true

	_, err := pipeline.NewRunner(completer, 0, nil).Run(ctx, "seed", stage)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_NoStages(t *testing.T) {
	_, err := pipeline.NewRunner(mocks.NewCompleter(t), 0, nil).Run(context.Background(), "seed")

	require.Error(t, err)
}
