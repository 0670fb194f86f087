package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/felipemarinho97/webshare-stremio/config"
	"github.com/felipemarinho97/webshare-stremio/requester"
	"github.com/felipemarinho97/webshare-stremio/resolver"
	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/felipemarinho97/webshare-stremio/utils"
	"github.com/felipemarinho97/webshare-stremio/webshare"
	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	var info schema.ShowInfo
	var mediaType string
	var token string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Search webshare and print the ranked candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			info.Type = schema.MediaType(mediaType)
			if !info.IsMovie() && !info.IsSeries() {
				return fmt.Errorf("unknown type %q", mediaType)
			}
			if token == "" {
				return errors.New("--token is required")
			}

			cfg := config.Load()
			client := webshare.NewClient(requester.NewRequester(nil, nil), webshare.Config{
				BaseURL:     cfg.WebshareAPIURL,
				SearchLimit: cfg.SearchLimit,
			})
			candidates := resolver.NewResolver(client, nil, cfg.PublicURL, cfg.MaxResults).
				ResolveStreams(cmd.Context(), info, token)

			rows := make([][]string, 0, len(candidates))
			for i, c := range candidates {
				tier := "weak"
				if c.StrongMatch {
					tier = "strong"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					c.Name,
					c.Language.String(),
					tier,
					strconv.FormatFloat(c.TitleMatch, 'f', 2, 64),
					strconv.FormatFloat(c.NameMatch, 'f', 1, 64),
					strconv.Itoa(c.PositiveVotes),
					utils.HumanSize(c.Size),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Filename", "Language", "Match", "Title", "Name", "Votes", "Size"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", string(schema.MediaTypeMovie), "movie or series")
	cmd.Flags().StringVar(&info.Name, "name", "", "Primary (Czech) title")
	cmd.Flags().StringVar(&info.NameSk, "name-sk", "", "Slovak title")
	cmd.Flags().StringVar(&info.NameEn, "name-en", "", "English title")
	cmd.Flags().StringVar(&info.OriginalName, "original", "", "Original title")
	cmd.Flags().StringVar(&info.Year, "year", "", "Release year")
	cmd.Flags().StringVar(&info.Season, "season", "", "Season number (series)")
	cmd.Flags().StringVar(&info.Episode, "episode", "", "Episode number (series)")
	cmd.Flags().StringVar(&token, "token", "", "Webshare session token (wst)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
