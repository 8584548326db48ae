package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"quiz-engine/internal/dispatch"
	"quiz-engine/internal/domain"
	"quiz-engine/internal/id"
	"quiz-engine/internal/infra/memory"
	"quiz-engine/internal/question"
)

type askOptions struct {
	url     string
	name    string
	round   int
	variant string
	warmup  bool
	timeout time.Duration
	banks   string
}

// NewAskCmd sends a single question to one player endpoint and prints the
// outcome. Useful when building a player.
func NewAskCmd() *cobra.Command {
	opts := askOptions{}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask one question to a player endpoint and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "player endpoint, e.g. http://localhost:9001")
	cmd.Flags().StringVar(&opts.name, "name", "player", "player name (the warm-up answer)")
	cmd.Flags().IntVar(&opts.round, "round", 1, "round whose window the question is drawn from")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "ask this variant instead of drawing one")
	cmd.Flags().BoolVar(&opts.warmup, "warmup", false, "ask the warm-up question")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "dispatch timeout")
	cmd.Flags().StringVar(&opts.banks, "banks", "", "YAML bank file (defaults to built-in banks)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runAsk(cmd *cobra.Command, opts askOptions) error {
	ctx := cmd.Context()
	ids := id.New()
	player, err := domain.NewPlayer(ids.NewID(), opts.name, opts.url)
	if err != nil {
		return err
	}

	var loader *memory.StaticBankLoader
	if opts.banks != "" {
		loader, err = memory.LoadBankFile(opts.banks)
	} else {
		loader, err = memory.DefaultBankLoader()
	}
	if err != nil {
		return err
	}
	env := question.Env{IDs: ids, Rand: question.NewRand(0), Banks: memory.NewBankRepository(loader, time.Minute)}

	var q question.Question
	switch {
	case opts.warmup:
		q, err = question.NewWarmupFactory(env).NextQuestion(ctx, player)
	case opts.variant != "":
		var v question.Variant
		v, err = question.Lookup(question.Name(opts.variant))
		if err == nil {
			q, err = v.New(ctx, env, player, nil)
		}
	default:
		factory := question.NewRoundFactory(env, nil)
		for factory.Round() < opts.round {
			_ = factory.AdvanceRound()
		}
		q, err = factory.NextQuestion(ctx, player)
	}
	if err != nil {
		return err
	}

	outcome, err := dispatch.New(dispatch.WithTimeout(opts.timeout)).Dispatch(ctx, q, player)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "question: %s\n", question.Render(q))
	fmt.Fprintf(out, "expected: %s\n", q.CorrectAnswer())
	fmt.Fprintf(out, "answer:   %q (status %d)\n", outcome.Answer, outcome.Status)
	fmt.Fprintf(out, "result:   %s, %d points, ask again in %s\n", outcome.Result, outcome.Points, outcome.Delay)
	return nil
}
