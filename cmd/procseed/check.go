package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/procseed/cmd/procseed/shared"
	"github.com/lox/procseed/internal/catalog"
	"github.com/lox/procseed/internal/check"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("8"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// CheckCmd runs the statistical checks for one stream.
type CheckCmd struct {
	LogFlags     `embed:""`
	CatalogFlags `embed:""`

	Stream   string  `kong:"required,help='Stream name'"`
	FirstKey uint64  `kong:"name='first-key',default='0',help='First key'"`
	Keys     int     `kong:"default='256',help='Number of consecutive keys'"`
	Samples  int     `kong:"default='256',help='Raw draws per key'"`
	Bins     int     `kong:"default='64',help='Histogram bins for the uniformity test'"`
	Workers  int     `kong:"default='4',help='Concurrent workers'"`
	Alpha    float64 `kong:"default='0.001',help='Significance level of the uniformity test'"`
}

func (c *CheckCmd) Run(env *Env) error {
	logger := c.logger()

	cat, err := c.load()
	if err != nil {
		return err
	}
	streams, _, err := cat.Build(catalog.WithLogger(c.libraryLogger()))
	if err != nil {
		return err
	}
	stream, ok := streams[c.Stream]
	if !ok {
		return fmt.Errorf("unknown stream %q", c.Stream)
	}
	seed, err := c.resolveSeed(cat, logger)
	if err != nil {
		return err
	}

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()

	report, err := check.Run(ctx, check.Config{
		Stream:   stream,
		Seed:     seed,
		FirstKey: c.FirstKey,
		Keys:     c.Keys,
		Samples:  c.Samples,
		Bins:     c.Bins,
		Workers:  c.Workers,
		Logger:   c.libraryLogger(),
	})
	if err != nil {
		return err
	}

	passed := report.Passed(c.Alpha)
	logger.Info().
		Str("stream", c.Stream).
		Bool("passed", passed).
		Dur("elapsed", report.Elapsed).
		Msg("Check finished")

	if err := renderReport(env.Stdout, c.Stream, report, c.Alpha); err != nil {
		return err
	}
	if !passed {
		return fmt.Errorf("stream %s failed checks", c.Stream)
	}
	return nil
}

func renderReport(w io.Writer, name string, r *check.Report, alpha float64) error {
	limit := r.CorrelationLimit()
	verdict := func(ok bool) string {
		if ok {
			return passStyle.Render("PASS")
		}
		return failStyle.Render("FAIL")
	}
	row := func(label, value, status string) string {
		return labelStyle.Render(label) + " " + value + " " + status
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("Stream %s (seed %s, %d keys x %d samples)", name, r.Seed, r.Keys, r.Samples)),
		row("mean", fmt.Sprintf("%.6f", r.Mean), ""),
		row("std dev", fmt.Sprintf("%.6f", r.StdDev), ""),
		row("chi-square", fmt.Sprintf("%.3f (p=%.4f)", r.ChiSquare, r.PValue), verdict(r.PValue >= alpha)),
		row("key correlation", fmt.Sprintf("%.4f (limit %.4f)", r.MaxKeyCorrelation, limit), verdict(r.MaxKeyCorrelation < limit)),
		row("type correlation", fmt.Sprintf("%.4f (limit %.4f)", r.MaxTypeCorrelation, limit), verdict(r.MaxTypeCorrelation < limit)),
		row("determinism", fmt.Sprintf("%d mismatches", r.Mismatches), verdict(r.Mismatches == 0)),
		row("elapsed", r.Elapsed.String(), ""),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
