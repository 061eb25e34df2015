package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/advisor"
	"github.com/lox/blackjack-cli/internal/deck"
)

type CLI struct {
	Hands       []string `arg:"" help:"Player hands as card values, e.g. '10 7' or '11 6' (one quoted arg per player)" required:""`
	Dealer      string   `short:"d" help:"Dealer upcard (2-11 or A, 11 = Ace)" required:""`
	Decks       int      `help:"Number of decks in the shoe" default:"6"`
	Simulations int      `short:"s" help:"Number of Monte Carlo trials" default:"5000"`
	History     string   `help:"Cards seen in prior rounds, space separated (e.g. '2 10 A 6')"`
	Seed        int64    `help:"RNG seed for reproducible results (0 for random)"`
	Workers     int      `help:"Worker goroutines (0 = one per CPU)"`
	Verbose     bool     `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	actionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	dealer, ok := deck.ParseRank(cli.Dealer)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid dealer upcard %q\n", cli.Dealer)
		ctx.Exit(1)
	}

	players, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	history, err := parseRanks(cli.History)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing history: %v\n", err)
		ctx.Exit(1)
	}

	startTime := time.Now()
	report, err := advisor.New(logger).Advise(context.Background(), advisor.Request{
		NumDecks:     cli.Decks,
		Players:      players,
		DealerUpcard: dealer,
		Simulations:  cli.Simulations,
		History:      history,
		Seed:         cli.Seed,
		Workers:      cli.Workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	displayReport(report, dealer, len(history), cli.Simulations, duration)
}

func parseHands(handStrings []string) ([][]deck.Rank, error) {
	hands := make([][]deck.Rank, 0, len(handStrings))
	for i, handStr := range handStrings {
		hand, err := parseRanks(handStr)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) < 2 {
			return nil, fmt.Errorf("hand %d: must contain at least 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func parseRanks(s string) ([]deck.Rank, error) {
	var ranks []deck.Rank
	for _, field := range strings.Fields(s) {
		r, ok := deck.ParseRank(field)
		if !ok {
			return nil, fmt.Errorf("invalid card value %q", field)
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

func displayReport(report *advisor.Report, dealer deck.Rank, historyLen, simulations int, duration time.Duration) {
	fmt.Printf("%s %s\n\n", headerStyle.Render("dealer shows"), handStyle.Render(dealer.String()))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("total"),
		headerStyle.Render("advice"),
		headerStyle.Render("win"),
		headerStyle.Render("push"),
		headerStyle.Render("loss"))

	for i, advice := range report.Advice {
		total := fmt.Sprintf("%d", advice.Total)
		if advice.Soft {
			total = "soft " + total
		}
		probs := report.Outcomes.Players[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(formatCards(advice.Cards)),
			total,
			actionStyle.Render(advice.Action.String()),
			winStyle.Render(fmt.Sprintf("%.1f%%", probs.Win*100)),
			pushStyle.Render(fmt.Sprintf("%.1f%%", probs.Push*100)),
			lossStyle.Render(fmt.Sprintf("%.1f%%", probs.Loss*100)))
	}
	w.Flush()

	fmt.Printf("\n%s\n", headerStyle.Render("dealer final totals"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, total := range report.Outcomes.SortedDealerTotals() {
		label := fmt.Sprintf("%d", total)
		if total > 21 {
			label = "bust"
		}
		fmt.Fprintf(w, "%s\t%s\n", label,
			percentStyle.Render(fmt.Sprintf("%.1f%%", report.Outcomes.DealerTotals[total]*100)))
	}
	w.Flush()

	fmt.Printf("\n%s\n", headerStyle.Render("dealer hidden card"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, card := range report.Outcomes.SortedHiddenCards() {
		fmt.Fprintf(w, "%s\t%s\n", card.String(),
			percentStyle.Render(fmt.Sprintf("%.1f%%", report.Outcomes.HiddenCards[card]*100)))
	}
	w.Flush()

	if historyLen > 0 {
		fmt.Printf("\n%s running %+d, true %+.2f (%d cards seen)\n",
			headerStyle.Render("count"), report.RunningCount, report.TrueCount, historyLen)
	}

	fmt.Printf("\n%d trials in %v\n", simulations, duration.Truncate(time.Millisecond))
	if report.Outcomes.InfiniteDraws > 0 {
		fmt.Printf("%d draws fell back to the infinite-deck model (shoe exhausted)\n",
			report.Outcomes.InfiniteDraws)
	}
}

func formatCards(cards []deck.Rank) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
