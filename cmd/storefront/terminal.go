package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/metalldk/storefront/internal/auth"
	"github.com/metalldk/storefront/internal/cartview"
	"github.com/metalldk/storefront/internal/checkout"
)

// terminal stands in for the page's blocking dialogs.
type terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out}
}

// Notify prints message on its own line.
func (t *terminal) Notify(_ context.Context, message string) {
	fmt.Fprintln(t.out, message)
}

// Ask prints prompt and returns the trimmed answer. EOF counts as an empty answer.
func (t *terminal) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm shows the order summary, asks for a phone when the caller is a
// guest and waits for a yes/no answer.
func (t *terminal) Confirm(ctx context.Context, s checkout.Summary) (checkout.Confirmation, error) {
	fmt.Fprintln(t.out, "Confirm your order:")
	for _, line := range s.Lines {
		fmt.Fprintf(t.out, "  %s\n", line)
	}
	if s.More {
		fmt.Fprintln(t.out, "  ...")
	}
	fmt.Fprintf(t.out, "Total: %d ₽\n", s.Total)

	var phone string
	if s.RequirePhone {
		raw, err := t.Ask(ctx, "Phone for the manager to call back: ")
		if err != nil {
			return checkout.Confirmation{}, err
		}
		phone = auth.MaskPhone(raw)
	}

	answer, err := t.Ask(ctx, "Place the order? [y/N]: ")
	if err != nil {
		return checkout.Confirmation{}, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return checkout.Confirmation{Accepted: true, Phone: phone}, nil
	}
	return checkout.Confirmation{}, nil
}

// badgeLine prints the header counter after a cart change.
func (t *terminal) badgeLine(count int) {
	fmt.Fprintf(t.out, "Cart: %d\n", count)
}

var (
	_ checkout.Confirmer = (*terminal)(nil)
	_ checkout.Notifier  = (*terminal)(nil)
	_ cartview.Notifier  = (*terminal)(nil)
)
