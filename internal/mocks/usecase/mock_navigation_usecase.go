package usecase

import (
	"context"

	"trail/internal/domain/entity"
	"trail/internal/traversal"
	"trail/internal/usecase"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/mock"
)

// MockNavigationUsecase is a testify mock of usecase.NavigationUsecase.
type MockNavigationUsecase struct {
	mock.Mock
}

// NewMockNavigationUsecase creates a mock whose expectations are asserted
// when the test ends.
func NewMockNavigationUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNavigationUsecase {
	m := &MockNavigationUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockNavigationUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNavigationUsecase) EXPECT() *MockNavigationUsecase_Expecter {
	return &MockNavigationUsecase_Expecter{mock: &_m.Mock}
}

// WalkTo provides a mock function with given fields: ctx, req
func (_m *MockNavigationUsecase) WalkTo(ctx context.Context, req *usecase.WalkRequest) (*usecase.WalkResult, error) {
	ret := _m.Called(ctx, req)

	var result *usecase.WalkResult
	if ret.Get(0) != nil {
		result = ret.Get(0).(*usecase.WalkResult)
	}

	return result, ret.Error(1)
}

type MockNavigationUsecase_WalkTo_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) WalkTo(ctx, req any) *MockNavigationUsecase_WalkTo_Call {
	return &MockNavigationUsecase_WalkTo_Call{Call: _e.mock.On("WalkTo", ctx, req)}
}

func (_c *MockNavigationUsecase_WalkTo_Call) Return(result *usecase.WalkResult, err error) *MockNavigationUsecase_WalkTo_Call {
	_c.Call.Return(result, err)

	return _c
}

func (_c *MockNavigationUsecase_WalkTo_Call) Run(run func(ctx context.Context, req *usecase.WalkRequest)) *MockNavigationUsecase_WalkTo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args.Get(0).(context.Context), args.Get(1).(*usecase.WalkRequest))
	})

	return _c
}

// Clear provides a mock function with given fields: ctx
func (_m *MockNavigationUsecase) Clear(ctx context.Context) {
	_m.Called(ctx)
}

type MockNavigationUsecase_Clear_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) Clear(ctx any) *MockNavigationUsecase_Clear_Call {
	return &MockNavigationUsecase_Clear_Call{Call: _e.mock.On("Clear", ctx)}
}

func (_c *MockNavigationUsecase_Clear_Call) Return() *MockNavigationUsecase_Clear_Call {
	_c.Call.Return()

	return _c
}

// Status provides a mock function with given fields: ctx
func (_m *MockNavigationUsecase) Status(ctx context.Context) traversal.Snapshot {
	ret := _m.Called(ctx)

	return ret.Get(0).(traversal.Snapshot)
}

type MockNavigationUsecase_Status_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) Status(ctx any) *MockNavigationUsecase_Status_Call {
	return &MockNavigationUsecase_Status_Call{Call: _e.mock.On("Status", ctx)}
}

func (_c *MockNavigationUsecase_Status_Call) Return(snapshot traversal.Snapshot) *MockNavigationUsecase_Status_Call {
	_c.Call.Return(snapshot)

	return _c
}

// Scene provides a mock function with given fields: ctx
func (_m *MockNavigationUsecase) Scene(ctx context.Context) *geojson.FeatureCollection {
	ret := _m.Called(ctx)

	var fc *geojson.FeatureCollection
	if ret.Get(0) != nil {
		fc = ret.Get(0).(*geojson.FeatureCollection)
	}

	return fc
}

type MockNavigationUsecase_Scene_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) Scene(ctx any) *MockNavigationUsecase_Scene_Call {
	return &MockNavigationUsecase_Scene_Call{Call: _e.mock.On("Scene", ctx)}
}

func (_c *MockNavigationUsecase_Scene_Call) Return(fc *geojson.FeatureCollection) *MockNavigationUsecase_Scene_Call {
	_c.Call.Return(fc)

	return _c
}

// Camera provides a mock function with given fields: ctx
func (_m *MockNavigationUsecase) Camera(ctx context.Context) entity.Camera {
	ret := _m.Called(ctx)

	return ret.Get(0).(entity.Camera)
}

type MockNavigationUsecase_Camera_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) Camera(ctx any) *MockNavigationUsecase_Camera_Call {
	return &MockNavigationUsecase_Camera_Call{Call: _e.mock.On("Camera", ctx)}
}

func (_c *MockNavigationUsecase_Camera_Call) Return(camera entity.Camera) *MockNavigationUsecase_Camera_Call {
	_c.Call.Return(camera)

	return _c
}

// SetCamera provides a mock function with given fields: ctx, camera
func (_m *MockNavigationUsecase) SetCamera(ctx context.Context, camera entity.Camera) error {
	ret := _m.Called(ctx, camera)

	return ret.Error(0)
}

type MockNavigationUsecase_SetCamera_Call struct {
	*mock.Call
}

func (_e *MockNavigationUsecase_Expecter) SetCamera(ctx, camera any) *MockNavigationUsecase_SetCamera_Call {
	return &MockNavigationUsecase_SetCamera_Call{Call: _e.mock.On("SetCamera", ctx, camera)}
}

func (_c *MockNavigationUsecase_SetCamera_Call) Return(err error) *MockNavigationUsecase_SetCamera_Call {
	_c.Call.Return(err)

	return _c
}
