// Package pipeline provides the stage abstraction and the typed inputs and
// results passed between conversion stages.
package pipeline

import "context"

// Stage is one step of a sticker conversion: detect, schedule, materialize,
// plan or encode. A stage must not keep state between Execute calls so the
// orchestrator can share one instance across concurrent requests.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}
