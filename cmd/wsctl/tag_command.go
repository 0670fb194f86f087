package main

import (
	"fmt"
	"strconv"

	"github.com/felipemarinho97/webshare-stremio/release"
	"github.com/felipemarinho97/webshare-stremio/tagger"
	"github.com/spf13/cobra"
)

func newTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <filename>...",
		Short: "Show the language, episode and release fields parsed from filenames",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, name := range args {
				episode := ""
				if e := tagger.TagEpisode(name); e != nil {
					episode = fmt.Sprintf("S%02dE%02d", e.Season, e.Episode)
				}
				r := release.Parse(name)
				year := ""
				if r.Year != 0 {
					year = strconv.Itoa(r.Year)
				}
				rows = append(rows, []string{
					name, tagger.TagLanguage(name).String(), episode, r.Title, year, r.Resolution, r.Source,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Filename", "Language", "Episode", "Title", "Year", "Resolution", "Source"},
				rows,
				nil,
			))
			return nil
		},
	}
}
