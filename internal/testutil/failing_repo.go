package testutil

import (
	"context"
	"sync/atomic"

	"github.com/icanacademy/eduspace/internal/repository"
)

// FailOnNthPutRepo is a StateRepo that injects an error on the Nth Put
// call. Gets and Deletes pass through to the wrapped repo. Put calls are
// counted starting at 1.
type FailOnNthPutRepo struct {
	Repo   repository.StateRepo
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthPutRepo) Get(ctx context.Context, key string) (string, error) {
	return f.Repo.Get(ctx, key)
}

func (f *FailOnNthPutRepo) Put(ctx context.Context, key, value string) error {
	if f.count.Add(1) == f.FailOn {
		return f.Err
	}
	return f.Repo.Put(ctx, key, value)
}

func (f *FailOnNthPutRepo) Delete(ctx context.Context, key string) error {
	return f.Repo.Delete(ctx, key)
}
