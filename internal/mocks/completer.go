// Package mocks provides testify mocks for the completion interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/orator/internal/domain"
)

// Completer is a mock of pipeline.Completer.
type Completer struct {
	mock.Mock
}

// NewCompleter creates a mock that asserts its expectations on cleanup.
func NewCompleter(t interface {
	mock.TestingT
	Cleanup(func())
}) *Completer {
	m := &Completer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CompleteByModel records the call and returns the configured result.
func (m *Completer) CompleteByModel(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*domain.CompletionResponse)
	return resp, args.Error(1)
}

// OnSystem expects a call whose system message equals system.
func (m *Completer) OnSystem(system string) *mock.Call {
	return m.On("CompleteByModel", mock.Anything, mock.MatchedBy(func(req *domain.CompletionRequest) bool {
		return len(req.Messages) > 0 && req.Messages[0].Content == system
	}))
}

// Requests returns the completion requests received, in call order.
func (m *Completer) Requests() []*domain.CompletionRequest {
	requests := make([]*domain.CompletionRequest, 0, len(m.Calls))
	for _, call := range m.Calls {
		if req, ok := call.Arguments.Get(1).(*domain.CompletionRequest); ok {
			requests = append(requests, req)
		}
	}
	return requests
}

// Reply builds a completion response carrying content.
func Reply(content string) *domain.CompletionResponse {
	return &domain.CompletionResponse{ID: "mock", Model: "mock", Provider: "mock", Content: content}
}
