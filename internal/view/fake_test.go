package view

import (
	"context"
	"errors"
	"sync"

	"github.com/afianhyira/Campus-Event-Frontend/internal/model"
)

var errBackendDown = errors.New("backend down")

// fakeAPI satisfies every view interface. Unset funcs fail.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listFunc     func(ctx context.Context, t model.EventType) ([]model.Event, error)
	getFunc      func(ctx context.Context, id string) (*model.Event, error)
	isRegFunc    func(ctx context.Context, id string) (bool, error)
	registerFunc func(ctx context.Context, id string) error
	cancelFunc   func(ctx context.Context, id string) error
	statsFunc    func(ctx context.Context) (*model.Stats, error)
	deleteFunc   func(ctx context.Context, id string) error
	createFunc   func(ctx context.Context, in model.EventInput) (*model.Event, error)
	updateFunc   func(ctx context.Context, id string, in model.EventInput) (*model.Event, error)
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListEvents(ctx context.Context, t model.EventType) ([]model.Event, error) {
	f.record("list " + string(t))
	if f.listFunc == nil {
		return nil, errBackendDown
	}
	return f.listFunc(ctx, t)
}

func (f *fakeAPI) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	f.record("get " + id)
	if f.getFunc == nil {
		return nil, errBackendDown
	}
	return f.getFunc(ctx, id)
}

func (f *fakeAPI) IsRegistered(ctx context.Context, id string) (bool, error) {
	f.record("check " + id)
	if f.isRegFunc == nil {
		return false, errBackendDown
	}
	return f.isRegFunc(ctx, id)
}

func (f *fakeAPI) RegisterForEvent(ctx context.Context, id string) error {
	f.record("register " + id)
	if f.registerFunc == nil {
		return errBackendDown
	}
	return f.registerFunc(ctx, id)
}

func (f *fakeAPI) CancelRegistration(ctx context.Context, id string) error {
	f.record("cancel " + id)
	if f.cancelFunc == nil {
		return errBackendDown
	}
	return f.cancelFunc(ctx, id)
}

func (f *fakeAPI) Stats(ctx context.Context) (*model.Stats, error) {
	f.record("stats")
	if f.statsFunc == nil {
		return nil, errBackendDown
	}
	return f.statsFunc(ctx)
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, id string) error {
	f.record("delete " + id)
	if f.deleteFunc == nil {
		return errBackendDown
	}
	return f.deleteFunc(ctx, id)
}

func (f *fakeAPI) CreateEvent(ctx context.Context, in model.EventInput) (*model.Event, error) {
	f.record("create")
	if f.createFunc == nil {
		return nil, errBackendDown
	}
	return f.createFunc(ctx, in)
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, id string, in model.EventInput) (*model.Event, error) {
	f.record("update " + id)
	if f.updateFunc == nil {
		return nil, errBackendDown
	}
	return f.updateFunc(ctx, id, in)
}
