package mocks

import (
	"context"

	"craftwarden/core/item"
	"craftwarden/core/network"

	"github.com/stretchr/testify/mock"
)

// Inventory is a mock implementation of network.Inventory.
type Inventory struct {
	mock.Mock
}

func (m *Inventory) Items(ctx context.Context) ([]network.Item, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]network.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// Pool is a mock implementation of network.Pool.
type Pool struct {
	mock.Mock
}

func (m *Pool) CPUs(ctx context.Context) ([]network.CPU, error) {
	args := m.Called(ctx)
	if cpus, ok := args.Get(0).([]network.CPU); ok {
		return cpus, args.Error(1)
	}
	return nil, args.Error(1)
}

// PatternSource is a mock implementation of network.PatternSource.
type PatternSource struct {
	mock.Mock
}

func (m *PatternSource) PatternsFor(ctx context.Context, id item.Identity) ([]network.Pattern, error) {
	args := m.Called(ctx, id)
	if patterns, ok := args.Get(0).([]network.Pattern); ok {
		return patterns, args.Error(1)
	}
	return nil, args.Error(1)
}

// Submitter is a mock implementation of network.Submitter.
type Submitter struct {
	mock.Mock
}

func (m *Submitter) Submit(ctx context.Context, pattern network.Pattern, amount int) (network.Job, error) {
	args := m.Called(ctx, pattern, amount)
	if job, ok := args.Get(0).(network.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

// Job is a mock implementation of network.Job.
type Job struct {
	mock.Mock
}

func (m *Job) Canceled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *Job) Done(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
