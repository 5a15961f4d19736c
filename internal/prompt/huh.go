package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("prompt aborted")

// FormPrompter renders each question as a huh form.
type FormPrompter struct {
	// Accessible renders plain prompts for screen readers and non-TTY input.
	Accessible bool
}

// Ask renders q and waits for the answer.
func (p FormPrompter) Ask(ctx context.Context, q Question) (any, error) {
	s := q.Spec
	description := s.Description
	if q.Problem != nil {
		description = "✗ " + q.Problem.Error()
	}

	var (
		field  huh.Field
		result func() any
	)
	switch s.Type {
	case Confirm:
		value, _ := q.Default.(bool)
		field = huh.NewConfirm().
			Title(s.Message).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&value)
		result = func() any { return value }
	case Select:
		value := fmt.Sprint(defaultOr(q.Default, ""))
		field = huh.NewSelect[string]().
			Title(s.Message).
			Description(description).
			Options(huh.NewOptions(s.Choices...)...).
			Value(&value)
		result = func() any { return value }
	default:
		value := fmt.Sprint(defaultOr(q.Default, ""))
		field = huh.NewInput().
			Title(s.Message).
			Description(description).
			Value(&value)
		result = func() any { return value }
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.Accessible).
		WithShowHelp(false)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return result(), nil
}
