package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallel_AllSucceed(t *testing.T) {
	var ran atomic.Int32
	tasks := []Task{
		{Name: "subdomain", Func: func(context.Context) error { ran.Add(1); return nil }},
		{Name: "email", Func: func(context.Context) error { ran.Add(1); return nil }},
	}

	require.NoError(t, RunParallel(context.Background(), tasks))
	assert.Equal(t, int32(2), ran.Load())
}

func TestRunParallel_ReturnsNamedError(t *testing.T) {
	boom := errors.New("taken")
	tasks := []Task{
		{Name: "subdomain", Func: func(context.Context) error { return nil }},
		{Name: "email", Func: func(context.Context) error { return boom }},
	}

	err := RunParallel(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "email")
}

func TestRunParallel_Empty(t *testing.T) {
	assert.NoError(t, RunParallel(context.Background(), nil))
}
