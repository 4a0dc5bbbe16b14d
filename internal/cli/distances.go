package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yieldpath/pkg/network"
	"github.com/matzehuels/yieldpath/pkg/pipeline"
)

// distancesCommand creates the distances command.
func (c *CLI) distancesCommand() *cobra.Command {
	var (
		start string
		all   bool
	)

	cmd := &cobra.Command{
		Use:               "distances [file]",
		Short:             "Print hop distances between the start and the relevant locations",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: inputFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("start") && c.config.Start != "" {
				start = c.config.Start
			}
			net, err := buildNetwork(args[0], start)
			if err != nil {
				return err
			}
			return printDistanceTable(cmd.OutOrStdout(), net, distanceIDs(net, start, all))
		},
	}

	cmd.Flags().StringVar(&start, "start", pipeline.DefaultStart, "start location (first row)")
	cmd.Flags().BoolVar(&all, "all", false, "include every location, not just the relevant ones")

	return cmd
}

// distanceIDs lists the table's locations: start first, then the relevant
// locations (or all of them) in network order.
func distanceIDs(net *network.Network, start string, all bool) []string {
	ids := []string{start}
	for _, loc := range net.Locations() {
		if loc.ID == start || (!all && !loc.Relevant()) {
			continue
		}
		ids = append(ids, loc.ID)
	}
	return ids
}

// distanceRows returns one row per id: the id followed by its hop count to
// every id. Unreachable pairs are shown as "-".
func distanceRows(net *network.Network, dist *network.Distances, ids []string) [][]string {
	index := make([]int, len(ids))
	for i, id := range ids {
		index[i], _ = net.Index(id)
	}

	rows := make([][]string, len(ids))
	for i, a := range index {
		row := []string{ids[i]}
		for _, b := range index {
			h, ok := dist.Hops(a, b)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, strconv.Itoa(h))
		}
		rows[i] = row
	}
	return rows
}

func printDistanceTable(w io.Writer, net *network.Network, ids []string) error {
	dist := network.NewDistances(net)
	rows := distanceRows(net, dist, ids)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(slices.Concat([]string{""}, ids)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return headerStyle.Padding(0, 1)
			case row == col-1:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	if err != nil {
		return err
	}
	if n := dist.Components(); n > 1 {
		printWarning("network has %d disconnected components", n)
	}
	return nil
}
