package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// Policy controls which questions may be asked.
type Policy struct {
	// Headless forbids asking anything. Resolution fails instead.
	Headless bool

	// ReAskAnswered asks questions that already have a stored answer.
	// Ignored when Headless is set.
	ReAskAnswered bool
}

// Question is what a Prompter is asked to render.
type Question struct {
	Spec Spec

	// Default is pre-filled: the stored answer, else the spec default.
	Default any

	// Problem is the validation error of the previous attempt, if any.
	Problem error
}

// Prompter collects one answer. Input and Select questions yield strings,
// Confirm questions yield bools.
type Prompter interface {
	Ask(ctx context.Context, q Question) (any, error)
}

// HeadlessPromptError lists the questions a headless run would have asked.
type HeadlessPromptError struct {
	Names []string
}

func (e *HeadlessPromptError) Error() string {
	return fmt.Sprintf("answers required in headless mode: %s", strings.Join(e.Names, ", "))
}

// Unwrap lets errors.Is match ErrHeadless.
func (e *HeadlessPromptError) Unwrap() error {
	return oerrors.ErrHeadless
}

func answered(known catalog.Answers, name string) bool {
	v, ok := known[name]
	return ok && v != nil
}

func (p Policy) skipAnswered() bool {
	return p.Headless || !p.ReAskAnswered
}

func defaultFor(s Spec, known, running catalog.Answers) any {
	if answered(known, s.Name) {
		return known[s.Name]
	}
	if s.Default != nil {
		return s.Default(running.Clone())
	}
	return nil
}

// Pending returns the names of the questions Resolve would ask, in order.
// Later When predicates see the defaults of earlier pending questions.
func Pending(specs []Spec, known catalog.Answers, policy Policy) []string {
	running := known.Clone()
	var pending []string
	for _, s := range specs {
		if answered(known, s.Name) && policy.skipAnswered() {
			continue
		}
		if s.When != nil && !s.When(running.Clone()) {
			continue
		}
		pending = append(pending, s.Name)
		running[s.Name] = defaultFor(s, known, running)
	}
	return pending
}

// Resolve asks the questions in declaration order and returns known merged
// with the fresh answers (fresh wins). A question is skipped when it already
// has an answer (unless policy.ReAskAnswered) or its When returns false for
// the answers gathered so far. In headless mode any question that would be
// asked fails the resolution before anything is asked. known is never
// modified.
func Resolve(ctx context.Context, specs []Spec, known catalog.Answers, policy Policy, p Prompter) (catalog.Answers, error) {
	if policy.Headless {
		if pending := Pending(specs, known, policy); len(pending) > 0 {
			return nil, &HeadlessPromptError{Names: pending}
		}
		return known.Clone(), nil
	}

	running := known.Clone()
	fresh := catalog.Answers{}
	for _, s := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if answered(known, s.Name) && policy.skipAnswered() {
			continue
		}
		if s.When != nil && !s.When(running.Clone()) {
			continue
		}

		v, err := ask(ctx, p, s, defaultFor(s, known, running))
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", s.Name, err)
		}
		running[s.Name] = v
		fresh[s.Name] = v
	}
	return known.Merge(fresh), nil
}

// ask repeats a question until its answer validates.
func ask(ctx context.Context, p Prompter, s Spec, def any) (any, error) {
	var problem error
	for {
		v, err := p.Ask(ctx, Question{Spec: s, Default: def, Problem: problem})
		if err != nil {
			return nil, err
		}
		if s.Validate == nil {
			return v, nil
		}
		if problem = s.Validate(v); problem == nil {
			return v, nil
		}
		def = v
	}
}
