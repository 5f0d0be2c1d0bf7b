package service

import (
	"context"

	"trail/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRouteFetcher is a testify mock of service.RouteFetcher.
type MockRouteFetcher struct {
	mock.Mock
}

// NewMockRouteFetcher creates a mock whose expectations are asserted when
// the test ends.
func NewMockRouteFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRouteFetcher {
	m := &MockRouteFetcher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockRouteFetcher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRouteFetcher) EXPECT() *MockRouteFetcher_Expecter {
	return &MockRouteFetcher_Expecter{mock: &_m.Mock}
}

// FetchRoute provides a mock function with given fields: ctx, origin, destination
func (_m *MockRouteFetcher) FetchRoute(ctx context.Context, origin, destination entity.Coordinate) (entity.Path, error) {
	ret := _m.Called(ctx, origin, destination)

	if fn, ok := ret.Get(0).(func(context.Context, entity.Coordinate, entity.Coordinate) (entity.Path, error)); ok {
		return fn(ctx, origin, destination)
	}

	var path entity.Path
	if ret.Get(0) != nil {
		path = ret.Get(0).(entity.Path)
	}

	return path, ret.Error(1)
}

type MockRouteFetcher_FetchRoute_Call struct {
	*mock.Call
}

// FetchRoute is a helper method to define mock.On call
func (_e *MockRouteFetcher_Expecter) FetchRoute(ctx, origin, destination any) *MockRouteFetcher_FetchRoute_Call {
	return &MockRouteFetcher_FetchRoute_Call{Call: _e.mock.On("FetchRoute", ctx, origin, destination)}
}

func (_c *MockRouteFetcher_FetchRoute_Call) Return(path entity.Path, err error) *MockRouteFetcher_FetchRoute_Call {
	_c.Call.Return(path, err)

	return _c
}

func (_c *MockRouteFetcher_FetchRoute_Call) Run(run func(ctx context.Context, origin, destination entity.Coordinate)) *MockRouteFetcher_FetchRoute_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args.Get(0).(context.Context), args.Get(1).(entity.Coordinate), args.Get(2).(entity.Coordinate))
	})

	return _c
}
