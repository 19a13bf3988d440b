package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	barColor     = color.New(color.FgHiBlack).SprintFunc()
	titleColor   = color.New(color.FgBlack, color.BgCyan).SprintFunc()
	promptColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	noteColor    = color.New(color.FgHiBlack).SprintFunc()
	hintColor    = color.New(color.FgHiBlack, color.Italic).SprintFunc()
)

// line is one read from the input.
type line struct {
	text string
	err  error
}

// Console implements Prompter over a reader and a writer.
type Console struct {
	in  io.Reader
	out io.Writer

	startReader sync.Once
	lines       chan line
}

// NewConsole returns a Console reading answers from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, lines: make(chan line)}
}

func (c *Console) Intro(title string) {
	fmt.Fprintf(c.out, "%s\n%s  %s\n", barColor("┌"), barColor("│"), titleColor(" "+title+" "))
}

func (c *Console) Outro(message string) {
	fmt.Fprintf(c.out, "%s  %s\n\n", barColor("└"), message)
}

func (c *Console) Cancel(message string) {
	fmt.Fprintf(c.out, "%s  %s\n\n", barColor("└"), errorColor(message))
}

// Note prints body in a titled block.
func (c *Console) Note(body, title string) {
	fmt.Fprintf(c.out, "%s\n%s  %s\n", barColor("│"), barColor("◇"), promptColor(title))
	for _, l := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		fmt.Fprintf(c.out, "%s  %s\n", barColor("│"), noteColor(l))
	}
	fmt.Fprintf(c.out, "%s\n", barColor("├"))
}

func (c *Console) Info(message string)    { c.status(infoColor("●"), message) }
func (c *Console) Success(message string) { c.status(successColor("◆"), message) }
func (c *Console) Warn(message string)    { c.status(warnColor("▲"), warnColor(message)) }
func (c *Console) Error(message string)   { c.status(errorColor("■"), errorColor(message)) }

func (c *Console) status(marker, message string) {
	fmt.Fprintf(c.out, "%s\n%s  %s\n", barColor("│"), marker, message)
}

// Text asks for a line of text, repeating the question until validate accepts
// the trimmed answer.
func (c *Console) Text(ctx context.Context, message string, validate Validator) (string, error) {
	for {
		c.ask(message, "")
		answer, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if !c.accept(answer, validate) {
			continue
		}
		return answer, nil
	}
}

// Password asks for a secret. Input is not echoed when it comes from a terminal.
func (c *Console) Password(ctx context.Context, message string, validate Validator) (string, error) {
	for {
		c.ask(message, "")
		answer, err := c.readSecret(ctx)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if !c.accept(answer, validate) {
			continue
		}
		return answer, nil
	}
}

// Select lists options and returns the chosen value. The answer may be the
// option number, its value or its label; an empty answer picks the first option.
func (c *Console) Select(ctx context.Context, message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", message)
	}
	for {
		c.ask(message, "")
		for i, opt := range options {
			fmt.Fprintf(c.out, "%s  %s %s\n", barColor("│"), hintColor(fmt.Sprintf("%2d.", i+1)), opt.Label)
		}
		fmt.Fprintf(c.out, "%s  %s ", barColor("│"), hintColor("choice [1]:"))

		answer, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		if value, ok := pick(strings.TrimSpace(answer), options); ok {
			return value, nil
		}
		c.invalid(fmt.Sprintf("please choose a number between 1 and %d", len(options)))
	}
}

func pick(answer string, options []Option) (string, bool) {
	if answer == "" {
		return options[0].Value, true
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1].Value, true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(answer, opt.Value) || strings.EqualFold(answer, opt.Label) {
			return opt.Value, true
		}
	}
	return "", false
}

// Confirm asks a yes/no question; an empty answer returns initial.
func (c *Console) Confirm(ctx context.Context, message string, initial bool) (bool, error) {
	hint := "y/N"
	if initial {
		hint = "Y/n"
	}
	for {
		c.ask(message, hint)
		answer, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return initial, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.invalid("please answer yes or no")
	}
}

// Spinner returns a spinner writing to the console's output.
func (c *Console) Spinner() Spinner {
	return NewSpinner(c.out)
}

func (c *Console) ask(message, hint string) {
	fmt.Fprintf(c.out, "%s\n%s  %s", barColor("│"), promptColor("◆"), message)
	if hint != "" {
		fmt.Fprintf(c.out, " %s", hintColor("("+hint+")"))
	}
	fmt.Fprintf(c.out, "\n%s  ", barColor("│"))
}

func (c *Console) accept(answer string, validate Validator) bool {
	if validate == nil {
		return true
	}
	if err := validate(answer); err != nil {
		c.invalid(err.Error())
		return false
	}
	return true
}

func (c *Console) invalid(message string) {
	fmt.Fprintf(c.out, "%s  %s\n", warnColor("▲"), warnColor(message))
}

// readLine waits for the next input line or for ctx to end. A single reader
// goroutine owns the input so an abandoned read is picked up by the next prompt.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.startReader.Do(func() {
		go func() {
			r := bufio.NewReader(c.in)
			for {
				text, err := r.ReadString('\n')
				if err != nil && text == "" {
					c.lines <- line{err: err}
					close(c.lines)
					return
				}
				c.lines <- line{text: strings.TrimRight(text, "\r\n")}
			}
		}()
	})

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ErrCancelled
	case l, ok := <-c.lines:
		if !ok || l.err != nil {
			fmt.Fprintln(c.out)
			return "", ErrCancelled
		}
		return l.text, nil
	}
}

// readSecret reads without echo when input is a terminal.
func (c *Console) readSecret(ctx context.Context) (string, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.readLine(ctx)
	}

	fd := int(f.Fd())
	state, err := term.GetState(fd)
	if err != nil {
		return "", err
	}

	result := make(chan line, 1)
	go func() {
		b, err := term.ReadPassword(fd)
		result <- line{text: string(b), err: err}
	}()

	select {
	case <-ctx.Done():
		_ = term.Restore(fd, state)
		fmt.Fprintln(c.out)
		return "", ErrCancelled
	case l := <-result:
		fmt.Fprintln(c.out)
		if l.err != nil {
			return "", ErrCancelled
		}
		return l.text, nil
	}
}
