package cmd

import (
	"io"
	"math/rand/v2"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/yhkl-dev/trackdeck/domain"
)

var (
	listShuffle bool
	listSeed    uint64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the track catalog",
	Long:  `Print the configured tracks as a table, optionally in a shuffled order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var rng *rand.Rand
		if listSeed != 0 {
			rng = rand.New(rand.NewPCG(listSeed, listSeed))
		}
		pl, err := newPlaylist(cfg, rng)
		if err != nil {
			return err
		}
		if listShuffle {
			pl.Shuffle()
		}

		writeTrackTable(cmd.OutOrStdout(), pl.Tracks())
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listShuffle, "shuffle", "s", false, "print in shuffled order")
	listCmd.Flags().Uint64Var(&listSeed, "seed", 0, "non-zero seed for a reproducible shuffle")
	rootCmd.AddCommand(listCmd)
}

// writeTrackTable renders tracks in playlist order
func writeTrackTable(w io.Writer, tracks []domain.Track) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "ID", "Title", "Artist", "Duration"})
	for i, track := range tracks {
		t.AppendRow(table.Row{
			i + 1,
			track.ID(),
			track.Title(),
			text.FgHiBlack.Sprint(track.Artist()),
			track.DurationLabel(),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Tracks", len(tracks)})
	t.Render()
}
