package diorama

import (
	"errors"
	"fmt"

	"github.com/mokiat/lacking/util/async"
)

var (
	ErrAlreadyLoaded = errors.New("asset already loaded")
	ErrNoAnimation   = errors.New("model has no animation clips")
)

type AssetState int

const (
	AssetNotLoaded AssetState = iota
	AssetLoading
	AssetLoaded
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetNotLoaded:
		return "not-loaded"
	case AssetLoading:
		return "loading"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	default:
		return fmt.Sprintf("AssetState(%d)", int(s))
	}
}

// Asset is a single-shot load slot: NotLoaded, then Loading, then either
// Loaded with a value or Failed with a reason. Transitions out of Loading
// happen at most once.
type Asset[T any] struct {
	Path string

	state AssetState
	value T
	err   error
}

func NewAsset[T any](path string) *Asset[T] {
	return &Asset[T]{Path: path}
}

func (a *Asset[T]) State() AssetState {
	return a.state
}

func (a *Asset[T]) Value() (T, bool) {
	return a.value, a.state == AssetLoaded
}

func (a *Asset[T]) Err() error {
	return a.err
}

// Track subscribes to the promise. The outcome is scheduled on the worker so
// that onLoaded and onDone run on the render loop. An error returned from
// onLoaded fails the asset.
func (a *Asset[T]) Track(worker Worker, promise async.Promise[T], onLoaded func(T) error, onDone func(error)) {
	a.state = AssetLoading
	promise.OnSuccess(func(value T) {
		worker.Schedule(func() {
			onDone(a.complete(value, onLoaded))
		})
	})
	promise.OnError(func(err error) {
		worker.Schedule(func() {
			onDone(a.fail(err))
		})
	})
}

func (a *Asset[T]) complete(value T, onLoaded func(T) error) error {
	if a.state != AssetLoading {
		return fmt.Errorf("%s: %w", a.Path, ErrAlreadyLoaded)
	}
	if err := onLoaded(value); err != nil {
		return a.fail(err)
	}
	a.state = AssetLoaded
	a.value = value
	return nil
}

func (a *Asset[T]) fail(err error) error {
	if a.state != AssetLoading {
		return fmt.Errorf("%s: late failure after %s: %w", a.Path, a.state, err)
	}
	a.state = AssetFailed
	a.err = fmt.Errorf("failed to load %s: %w", a.Path, err)
	return a.err
}
