package saga

import (
	"context"
	"fmt"
)

// Step is one unit of a multi-resource write sequence. Run performs the write;
// Compensate undoes it and is only invoked if Run succeeded and a later step
// failed. BestEffort steps never fail the saga: their error is reported to the
// OnStepError callback and execution continues.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
	BestEffort bool
}

// Saga executes steps in order, maintaining a compensation stack. On failure
// the stack unwinds in reverse and the original step error propagates;
// compensation errors are reported, never substituted for the original.
type Saga struct {
	steps []Step

	// OnStepError receives best-effort step failures and compensation
	// failures. Nil means they are silently dropped.
	OnStepError func(stepName string, err error)
}

func New(steps ...Step) *Saga {
	return &Saga{steps: steps}
}

func (s *Saga) report(stepName string, err error) {
	if s.OnStepError != nil {
		s.OnStepError(stepName, err)
	}
}

// Execute runs the saga to completion or unwinds. The returned error is the
// failing step's error wrapped with the step name.
func (s *Saga) Execute(ctx context.Context) error {
	var done []Step

	for _, step := range s.steps {
		err := step.Run(ctx)
		if err == nil {
			if step.Compensate != nil {
				done = append(done, step)
			}
			continue
		}

		if step.BestEffort {
			s.report(step.Name, err)
			continue
		}

		for i := len(done) - 1; i >= 0; i-- {
			if cerr := done[i].Compensate(ctx); cerr != nil {
				s.report(done[i].Name, cerr)
			}
		}
		return fmt.Errorf("%s: %w", step.Name, err)
	}

	return nil
}
