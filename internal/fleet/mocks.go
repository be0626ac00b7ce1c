package fleet

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RunnerMock struct {
	mock.Mock
}

func (mocked *RunnerMock) Run(ctx context.Context, args ...string) (string, string, error) {
	called := mocked.Called(ctx, args)
	return called.String(0), called.String(1), called.Error(2)
}

func (mocked *RunnerMock) Stream(ctx context.Context, args ...string) error {
	called := mocked.Called(ctx, args)
	return called.Error(0)
}
