// Package console is a line oriented terminal for the ATM.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/luckyComet55/atm-tg-bot/internal/atm"
	"github.com/luckyComet55/atm-tg-bot/internal/session"
)

const helpText = `Commands:
  swipe <pin>   insert a card whose pin is <pin>, digits 1-4
  1 2 3 4       press a digit key, "1234" presses several
  enter         press Enter
  cancel        return the card
  cash          show the cash left in the machine
  state         show the session state
  help          show this text
  quit          leave`

type Console struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger

	mu sync.Mutex
}

func New(s *session.Session, in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	return &Console{
		session: s,
		in:      in,
		out:     out,
		logger:  logger,
	}
}

// Run reads commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.println("Welcome. Type help for the list of commands.")

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil && ctx.Err() == nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			if quit := c.handle(line); quit {
				return nil
			}
		}
	}
}

// Notify prints a result that did not come from typed input, such as an idle timeout.
func (c *Console) Notify(res session.Result) {
	c.println(res.Message())
}

func (c *Console) handle(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	c.logger.Debug("command", "name", fields[0])

	switch cmd := fields[0]; cmd {
	case "quit", "exit":
		c.println("Bye.")
		return true
	case "help":
		c.println(helpText)
	case "cash":
		c.println(fmt.Sprintf("Cash inside: %d", c.session.Cash()))
	case "state":
		c.println(c.session.State().String())
	case "cancel":
		c.println(c.session.Cancel().Message())
	case "swipe":
		if len(fields) != 2 {
			c.println("Usage: swipe <pin>")
			return false
		}
		pin, err := atm.ParseDigits(fields[1])
		if err != nil || len(pin) == 0 {
			c.println("A pin is made of the digits 1 to 4.")
			return false
		}
		c.println(c.session.Swipe(pin).Message())
	case "enter":
		c.println(c.session.Press(atm.KeyEnter).Message())
	default:
		keys, err := atm.ParseDigits(cmd)
		if err != nil {
			c.println(fmt.Sprintf("Unknown command %q. Type help for the list of commands.", cmd))
			return false
		}
		c.pressAll(keys)
	}
	return false
}

func (c *Console) pressAll(keys []atm.Key) {
	var masked strings.Builder
	for _, k := range keys {
		res := c.session.Press(k)
		if res.Outcome != session.OutcomeKeyAccepted {
			if masked.Len() > 0 {
				c.println(masked.String())
				masked.Reset()
			}
			c.println(res.Message())
			if res.To.Kind() == atm.AuthWaiting {
				return
			}
			continue
		}
		masked.WriteString(res.Message())
	}
	if masked.Len() > 0 {
		c.println(masked.String())
	}
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.out, s); err != nil {
		c.logger.Error(err.Error())
	}
}
