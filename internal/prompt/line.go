package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LinePrompter asks questions over plain line-oriented streams. It serves
// pipes and tests.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers line by line from r.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// Ask prints the question and reads one answer. An empty line accepts the
// default.
func (p *LinePrompter) Ask(ctx context.Context, q Question) (any, error) {
	problem := q.Problem
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if problem != nil {
			fmt.Fprintf(p.out, "  ! %s\n", problem)
		}
		p.printQuestion(q)

		line, err := p.readLine()
		if err != nil {
			return nil, err
		}

		v, perr := parseAnswer(q, line)
		if perr == nil {
			return v, nil
		}
		problem = perr
	}
}

func (p *LinePrompter) printQuestion(q Question) {
	s := q.Spec
	fmt.Fprintf(p.out, "? %s", s.Message)
	if s.Type == Select {
		fmt.Fprintf(p.out, " (%s)", strings.Join(s.Choices, ", "))
	}
	if s.Type == Confirm {
		if b, _ := q.Default.(bool); b {
			fmt.Fprint(p.out, " (Y/n)")
		} else {
			fmt.Fprint(p.out, " (y/N)")
		}
	} else if q.Default != nil && fmt.Sprint(q.Default) != "" {
		fmt.Fprintf(p.out, " [%v]", q.Default)
	}
	fmt.Fprint(p.out, " ")
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseAnswer converts a typed line to the value for q's type.
func parseAnswer(q Question, line string) (any, error) {
	line = strings.TrimSpace(line)
	switch q.Spec.Type {
	case Confirm:
		if line == "" {
			b, _ := q.Default.(bool)
			return b, nil
		}
		switch strings.ToLower(line) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		return nil, fmt.Errorf("please answer y or n")
	case Select:
		if line == "" {
			line = fmt.Sprint(defaultOr(q.Default, ""))
		}
		for _, c := range q.Spec.Choices {
			if c == line {
				return c, nil
			}
		}
		if i, err := strconv.Atoi(line); err == nil && i >= 1 && i <= len(q.Spec.Choices) {
			return q.Spec.Choices[i-1], nil
		}
		return nil, fmt.Errorf("choose one of: %s", strings.Join(q.Spec.Choices, ", "))
	default:
		if line == "" {
			return fmt.Sprint(defaultOr(q.Default, "")), nil
		}
		return line, nil
	}
}

func defaultOr(v, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}
