package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yutnori/internal/domain/game"
	"yutnori/internal/engine"
)

var boardCmd = &cobra.Command{
	Use:   "board [kind]",
	Short: "Print a board graph",
	Long:  `Prints the node graph of a board kind (square, pentagon or hexagon) as text, yaml or json. Without a kind every board is printed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		kinds := engine.Kinds
		if len(args) == 1 {
			k, err := engine.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []engine.Kind{k}
		}

		var views []game.BoardView
		for _, k := range kinds {
			views = append(views, game.NewBoardView(engine.MustBuild(k)))
		}
		return renderBoards(cmd.OutOrStdout(), views, format, termenv.ColorProfile())
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().StringP("format", "f", "text", "Output format: text, yaml or json")
}

func renderBoards(w io.Writer, views []game.BoardView, format string, profile termenv.Profile) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(views)
	case "text":
		for i, v := range views {
			if i > 0 {
				fmt.Fprintln(w)
			}
			renderText(w, v, profile)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderText(w io.Writer, v game.BoardView, profile termenv.Profile) {
	title := profile.String(fmt.Sprintf("%s: %d sides x %d cells, start %d, center %d",
		v.Kind, v.Sides, v.CellsPerSide, v.Start, v.Center)).Bold()
	fmt.Fprintln(w, title)

	for _, n := range v.Nodes {
		line := fmt.Sprintf("%3d -> %-3d", n.ID, n.Forward)
		if n.Shortcut != nil {
			line += fmt.Sprintf(" shortcut %d", *n.Shortcut)
		}
		switch {
		case n.ID == v.Start:
			fmt.Fprintln(w, profile.String(line+" (start)").Foreground(profile.Color("#22c55e")))
		case n.Stops:
			fmt.Fprintln(w, profile.String(line).Foreground(profile.Color("#f59e0b")))
		case n.Intersection:
			fmt.Fprintln(w, profile.String(line+" (no stop)").Foreground(profile.Color("#94a3b8")))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
