package pagination

import "context"

// State of a paged list view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateLoadingMore
	StateExhausted
	StateError
)

// FetchFunc loads one page of a list.
type FetchFunc[T any] func(ctx context.Context, page int, limit int) ([]T, Info, error)

// Loader drives incremental ("load more") fetching of a paged list. Each
// Advance loads the next page and appends it to the accumulated items; a
// failed fetch keeps everything loaded so far and retries the same page.
// A Loader belongs to a single consumer and is not safe for concurrent use.
type Loader[T any] struct {
	fetch FetchFunc[T]
	limit int

	state    State
	info     Info
	items    []T
	nextPage int
}

func NewLoader[T any](fetch FetchFunc[T], limit int) *Loader[T] {
	return &Loader[T]{
		fetch:    fetch,
		limit:    limit,
		state:    StateIdle,
		nextPage: 1,
	}
}

func (l *Loader[T]) State() State {
	return l.state
}

// Items returns everything loaded so far, in fetch order.
func (l *Loader[T]) Items() []T {
	return l.items
}

func (l *Loader[T]) Pagination() Info {
	return l.info
}

// Advance fetches the next page. It is a no-op once the list is exhausted
// or while a fetch is already in flight. In the error state it retries the
// page that failed.
func (l *Loader[T]) Advance(ctx context.Context) error {
	switch l.state {
	case StateExhausted, StateLoading, StateLoadingMore:
		return nil
	}

	if l.nextPage == 1 {
		l.state = StateLoading
	} else {
		l.state = StateLoadingMore
	}

	items, info, err := l.fetch(ctx, l.nextPage, l.limit)
	if err != nil {
		l.state = StateError
		return err
	}

	l.items = append(l.items, items...)
	l.info = info
	l.nextPage = info.Current + 1

	if info.Current >= info.Pages {
		l.state = StateExhausted
	} else {
		l.state = StateLoaded
	}

	return nil
}
