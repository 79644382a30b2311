package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bevuihoc/bevuihoc/internal/audio"
	"github.com/bevuihoc/bevuihoc/internal/logging"
	"github.com/bevuihoc/bevuihoc/internal/minigame"
	"github.com/bevuihoc/bevuihoc/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one round on plain stdin/stdout (scores are not saved)",
	Long: `Play a level line by line without the TUI.

This is a stateless tool: the clock runs for real but no best score is
recorded. Useful for checking a content pack or a config override.`,
	RunE: runPreview,
}

func init() {
	addLevelFlags(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	l, diff, err := resolveLevel(cmd, d.cfg)
	if err != nil {
		return err
	}
	seed := d.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src, err := minigame.NewSource(ctx, l.Kind, diff, d.content, rng)
	if err != nil {
		return err
	}
	_, _, err = playHeadless(ctx, minigame.Options{
		Level:         l,
		Difficulty:    diff,
		Source:        src,
		FeedbackDelay: d.cfg.FeedbackDelay(),
		Audio:         audio.NewTerminal(cmd.OutOrStdout(), d.cfg.Audio.Bell, logging.Component(d.logger, "audio")),
		Logger:        d.logger,
		Rand:          rng,
		Scheduler:     session.RealScheduler{},
	}, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// playHeadless runs one round reading answers line by line from in. It
// returns the result and whether the round reached its end.
func playHeadless(ctx context.Context, opts minigame.Options, in io.Reader, out io.Writer) (minigame.Result, bool, error) {
	events := make(chan minigame.Event, 64)
	done := make(chan struct{})
	defer close(done)
	opts.OnEvent = func(e minigame.Event) {
		select {
		case events <- e:
		case <-done:
		}
	}

	round, err := minigame.NewRound(opts)
	if err != nil {
		return minigame.Result{}, false, err
	}
	fmt.Fprintf(out, "%s (%s)\n\n", opts.Level.Title, opts.Difficulty.Label(opts.Level.Language))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	stop := round.Start()
	defer stop()

	var card minigame.Card
	// handle returns the result once the round is over.
	handle := func(e minigame.Event) (*minigame.Result, error) {
		switch e := e.(type) {
		case minigame.CardEvent:
			if e.Err != nil {
				return nil, fmt.Errorf("question %d: %w", e.Index+1, e.Err)
			}
			card = e.Card
			printCard(out, e.Index, round.Status().TotalQuestions, card)
		case minigame.EndEvent:
			printResult(out, e.Result)
			return &e.Result, nil
		}
		return nil, nil
	}

	for {
		var e minigame.Event
		// Pending events go first so answers never race ahead of the card.
		select {
		case e = <-events:
		default:
			select {
			case e = <-events:
			case line, ok := <-lines:
				if !ok {
					fmt.Fprintln(out, "\n(input closed)")
					return minigame.Result{}, false, nil
				}
				answer(out, round, card, line)
				continue
			case <-ctx.Done():
				return minigame.Result{}, false, ctx.Err()
			}
		}
		res, err := handle(e)
		if err != nil {
			return minigame.Result{}, false, err
		}
		if res != nil {
			return *res, true, nil
		}
	}
}

func answer(out io.Writer, round *minigame.Round, card minigame.Card, line string) {
	if card.Mode == minigame.ModeKeys {
		var hits, keys int
		for _, ch := range line {
			keys++
			if round.Key(ch) {
				hits++
			}
		}
		if keys > 0 {
			fmt.Fprintf(out, "%d/%d phím đúng\n", hits, keys)
		}
		return
	}

	v := round.Submit(line)
	switch {
	case !v.Accepted:
		fmt.Fprintln(out, "(bỏ qua)")
	case v.Correct:
		fmt.Fprintln(out, "\033[32m✓ Đúng rồi!\033[0m")
	case v.Retry:
		fmt.Fprintln(out, "Chưa đúng, thử lại nhé!")
	default:
		fmt.Fprintf(out, "\033[31m✗ Sai.\033[0m Đáp án đúng: %s\n", v.Expected)
	}
}

func printCard(out io.Writer, index, total int, c minigame.Card) {
	fmt.Fprintf(out, "── Câu %d/%d ──\n", index+1, total)
	if c.Image != "" {
		fmt.Fprintln(out, c.Image)
	}
	fmt.Fprintln(out, c.Prompt)
	if c.Detail != "" {
		fmt.Fprintln(out, c.Detail)
	}
	switch c.Mode {
	case minigame.ModeChoice, minigame.ModeOrder:
		for i, o := range c.Options {
			text := o.Text
			if text == "" {
				text = o.Swatch
			}
			fmt.Fprintf(out, "  %d) %s\n", i+1, text)
		}
		if c.Mode == minigame.ModeOrder {
			fmt.Fprintln(out, "Nhập số thứ tự các từ, ví dụ: 2 1 3")
		}
	case minigame.ModeGrid:
		fmt.Fprintf(out, "Ô sáng: %d\n", c.Cell)
	case minigame.ModeKeys:
		fmt.Fprintf(out, "Gõ lại: %s\n", c.Expected)
	}
	fmt.Fprint(out, "> ")
}

func printResult(out io.Writer, res minigame.Result) {
	fmt.Fprintln(out)
	if res.TimedOut {
		fmt.Fprintln(out, "── Hết giờ! ──")
	} else {
		fmt.Fprintln(out, "── Hoàn thành! ──")
	}
	if res.Cheer != "" {
		fmt.Fprintln(out, res.Cheer)
	}
	fmt.Fprintf(out, "Đúng: %d/%d  Sai: %d  Điểm: %d\n", res.Score, res.Total, res.Incorrect, res.Points)
	for _, m := range res.Mistakes() {
		fmt.Fprintf(out, "  %s  ✗ %s  ✓ %s\n", strings.TrimSpace(m.Prompt), m.Given, m.Expected)
	}
}
