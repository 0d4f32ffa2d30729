// Package console is a line-oriented terminal front end for a game session.
//
// It collects codes from an io.Reader, hands them to the game engine and
// renders the scored attempts to an io.Writer. Invalid input is reported and
// re-prompted without consuming an attempt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
)

// Options configures one game at the terminal.
type Options struct {
	In          io.Reader
	Out         io.Writer
	Alphabet    game.Alphabet
	Length      int
	MaxAttempts int
	Mode        game.Mode
	Rand        game.Source
}

// quitWord ends the game early and reveals the secret.
const quitWord = "quit"

var errQuit = errors.New("player quit")

// Run plays one game to completion and returns its final status.
// Running out of input counts as quitting.
func Run(ctx context.Context, o Options) (game.Status, error) {
	g, err := game.New(game.Config{
		Alphabet:    o.Alphabet,
		Length:      o.Length,
		MaxAttempts: o.MaxAttempts,
		Mode:        o.Mode,
		Rand:        o.Rand,
	})
	if err != nil {
		return "", err
	}
	p := &prompter{sc: bufio.NewScanner(o.In), out: o.Out, alpha: g.Alphabet(), length: g.Length()}

	p.printf("Mastermind: crack the %d-symbol code in %d attempts.\n", g.Length(), g.MaxAttempts())
	p.printf("Symbols: %s (repeats allowed). Type %q to give up.\n", game.Code(g.Alphabet().Symbols()), quitWord)

	if g.Status() == game.StatusAwaitingSecret {
		if err := p.readSecret(ctx, g); err != nil {
			if errors.Is(err, errQuit) {
				p.printf("No secret set. Bye.\n")
				return g.Status(), nil
			}
			return g.Status(), err
		}
		p.printf("Secret set. Codebreaker, your turn.\n")
	}

	for !g.Status().Terminal() {
		code, err := p.read(ctx, fmt.Sprintf("Guess %d/%d: ", g.MaxAttempts()-g.RemainingAttempts()+1, g.MaxAttempts()))
		if errors.Is(err, errQuit) {
			p.printf("Game over! The secret code was %s.\n", g.RevealSecret())
			return g.Status(), nil
		}
		if err != nil {
			return g.Status(), err
		}

		a, st, err := g.SubmitGuess(code)
		if err != nil {
			p.printf("Invalid guess: %v\n", err)
			continue
		}
		log.Debug().Str("gameId", g.ID()).Int("turn", a.Turn).Int("exact", a.Exact).Int("value", a.Value).Msg("attempt")
		p.printf("Attempt %d: %s | exact %d | value %d\n", a.Turn, a.Guess, a.Exact, a.Value)

		switch st {
		case game.StatusWon:
			p.printf("Congratulations! You cracked the code in %d attempts.\n", a.Turn)
		case game.StatusLost:
			p.printf("Game over! The secret code was %s.\n", g.RevealSecret())
		default:
			p.printf("Remaining attempts: %d\n", g.RemainingAttempts())
		}
	}
	return g.Status(), nil
}

type prompter struct {
	sc     *bufio.Scanner
	out    io.Writer
	alpha  game.Alphabet
	length int
}

func (p *prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) readSecret(ctx context.Context, g *game.Session) error {
	for {
		code, err := p.read(ctx, "Codemaker, enter the secret code: ")
		if err != nil {
			return err
		}
		if _, err := g.SetSecret(code); err != nil {
			p.printf("Invalid secret: %v\n", err)
			continue
		}
		return nil
	}
}

// read prompts until a line parses as a code of the right length.
func (p *prompter) read(ctx context.Context, prompt string) (game.Code, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.printf("%s", prompt)
		if !p.sc.Scan() {
			if err := p.sc.Err(); err != nil {
				return nil, fmt.Errorf("read input: %w", err)
			}
			p.printf("\n")
			return nil, errQuit
		}
		line := strings.TrimSpace(p.sc.Text())
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, quitWord):
			return nil, errQuit
		}
		code, err := p.alpha.Parse(line)
		if err == nil {
			err = p.alpha.Validate(code, p.length)
		}
		if err != nil {
			p.printf("Invalid code: %v\n", err)
			continue
		}
		return code, nil
	}
}
