package util //nolint:revive // package name util hosts shared helpers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one task run by JoinAllBestEffort.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// Task is a unit of work for JoinAllBestEffort.
type Task[T any] func(ctx context.Context) (T, error)

// JoinAllBestEffort runs every task concurrently and waits for all of them.
// A failing task never cancels its siblings; outcomes are returned in task order.
// limit <= 0 means no concurrency limit. A panicking task is reported as that task's error.
func JoinAllBestEffort[T any](ctx context.Context, limit int, tasks ...Task[T]) []Outcome[T] {
	out := make([]Outcome[T], len(tasks))
	if len(tasks) == 0 {
		return out
	}

	// A plain group (not WithContext) so one failure does not cancel the rest.
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, task := range tasks {
		g.Go(func() error {
			out[i] = runTask(ctx, task)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func runTask[T any](ctx context.Context, task Task[T]) (o Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			o = Outcome[T]{Err: fmt.Errorf("task panicked: %v", r)}
		}
	}()
	if err := ctx.Err(); err != nil {
		return Outcome[T]{Err: err}
	}
	v, err := task(ctx)
	return Outcome[T]{Value: v, Err: err}
}

// Values returns the values of successful outcomes, preserving order.
func Values[T any](outcomes []Outcome[T]) []T {
	vals := make([]T, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			vals = append(vals, o.Value)
		}
	}
	return vals
}
