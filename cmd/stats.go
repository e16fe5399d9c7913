package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/chronicdata/brfss-dash/internal/dataset"
	"github.com/chronicdata/brfss-dash/internal/model"
)

var (
	statsData  string
	statsYear  int
	statsTopic string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for a cleaned dataset slice",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := statsData
		if path == "" {
			path = cfg.Data.Path
		}

		table, err := dataset.Load(path)
		if err != nil {
			return eris.Wrap(err, "stats: load dataset")
		}

		criteria := dataset.Criteria{
			YearFrom:      statsYear,
			YearTo:        statsYear,
			StratCategory: model.StratOverall,
		}
		if statsTopic != "" {
			topic, ok := model.ParseTopic(statsTopic)
			if !ok {
				return eris.Errorf("stats: unknown topic %q", statsTopic)
			}
			criteria.Topic = topic
		}

		obs := table.Filter(criteria)
		if len(obs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No data available for the selected filters.")
			return nil
		}

		s := dataset.Summarize(obs)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Records: %d\n", s.Count)
		fmt.Fprintf(out, "Mean:    %.2f%%\n", s.Mean)
		fmt.Fprintf(out, "Median:  %.2f%%\n", s.Median)
		fmt.Fprintf(out, "Min:     %.2f%%\n", s.Min)
		fmt.Fprintf(out, "Max:     %.2f%%\n", s.Max)

		ranked := dataset.LocationMeans(obs)
		hi := min(5, len(ranked))
		fmt.Fprintf(out, "\nHighest %d locations:\n", hi)
		for _, v := range ranked[:hi] {
			fmt.Fprintf(out, "  %-4s %-24s %6.1f%%\n", v.Location, v.Name, v.Value)
		}
		// Remaining rows only: with few locations the two lists must not overlap.
		if lo := min(5, len(ranked)-hi); lo > 0 {
			fmt.Fprintf(out, "Lowest %d locations:\n", lo)
			for _, v := range ranked[len(ranked)-lo:] {
				fmt.Fprintf(out, "  %-4s %-24s %6.1f%%\n", v.Location, v.Name, v.Value)
			}
		}

		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsData, "data", "", "cleaned file path (default from config)")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "restrict to a single survey year")
	statsCmd.Flags().StringVar(&statsTopic, "topic", "", "restrict to a topic: obesity, physical_activity, nutrition")
	rootCmd.AddCommand(statsCmd)
}
