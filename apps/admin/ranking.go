package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Swapnil27012000/uomdcs-sub003/core/udrf"
)

// ranking prints the ranking of year, or its changes since compareYear.
func (cli *commandLine) ranking(year, category, compareYear string) error {
	ctx := context.Background()
	q := udrf.RankQuery{Category: category, AcademicYear: year}

	entries, err := cli.svc.Rank(ctx, q)
	if err != nil {
		return err
	}

	if compareYear == "" {
		if isTerminalFunc() {
			return printRankingTable(cli.out, entries)
		}
		printRankingTSV(cli.out, entries)
		return nil
	}

	q.AcademicYear = compareYear
	previous, err := cli.svc.Rank(ctx, q)
	if err != nil {
		return err
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        rankingLines(previous),
		B:        rankingLines(entries),
		FromFile: compareYear,
		ToFile:   year,
		Context:  3,
	})
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(cli.out, "no changes")
		return nil
	}
	fmt.Fprint(cli.out, diff)
	return nil
}

func rankingHeader() []string {
	cols := []string{"RANK", "CODE", "NAME", "CATEGORY"}
	for _, id := range udrf.Sections {
		cols = append(cols, "S"+id.String())
	}
	return append(cols, "AUTO", "EXPERT", "EFFECTIVE")
}

func rankingRow(e udrf.RankedEntry) []string {
	row := []string{strconv.Itoa(e.Rank), e.Department.Code, e.Department.Name, e.Department.Category}
	for _, s := range e.Sections {
		row = append(row, formatScore(s))
	}
	expert := "-"
	if e.ExpertTotal != nil {
		expert = formatScore(*e.ExpertTotal)
	}
	return append(row, formatScore(e.AutoTotal), expert, formatScore(e.EffectiveScore))
}

func printRankingTable(w io.Writer, entries []udrf.RankedEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(rankingHeader(), "\t")+"\t")
	for _, e := range entries {
		fmt.Fprintln(tw, strings.Join(rankingRow(e), "\t")+"\t")
	}
	return tw.Flush()
}

func printRankingTSV(w io.Writer, entries []udrf.RankedEntry) {
	fmt.Fprintln(w, strings.Join(rankingHeader(), "\t"))
	for _, e := range entries {
		fmt.Fprintln(w, strings.Join(rankingRow(e), "\t"))
	}
}

// rankingLines is the diffable form of a ranking: one line per department.
func rankingLines(entries []udrf.RankedEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		reviewed := ""
		if e.HasExpertReview {
			reviewed = " (reviewed)"
		}
		lines = append(lines, fmt.Sprintf("%d %s %s%s\n", e.Rank, e.Department.Code, formatScore(e.EffectiveScore), reviewed))
	}
	return lines
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
