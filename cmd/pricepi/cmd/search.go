package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/pricepi/internal/api/client"
	"github.com/donaldgifford/pricepi/pkg/pricepi"
)

func searchCmd(a *app) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Pricepi for products",
		Long: "Signs and sends one search request to the Pricepi API and prints the products it returns.\n" +
			"With --gateway the search goes through a running pricepi gateway instead, and no\n" +
			"credentials are needed locally.",
		Example: `  pricepi search "samsung galaxy s5" --currency USD
  pricepi search "espresso machine" --currency EUR --sort price --limit 25 --output json
  pricepi search "galaxy s5" --gateway http://localhost:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}

			searcher, err := a.searcher(cmd)
			if err != nil {
				return err
			}

			products, err := searcher.Query(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}

			if a.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), products)
			}
			return printProductsTable(cmd.OutOrStdout(), products)
		},
	}
	flags.register(cmd)
	cmd.Flags().String("gateway", "", "pricepi gateway URL to search through")
	cobra.CheckErr(a.v.BindPFlag(keyGateway, cmd.Flags().Lookup("gateway")))

	return cmd
}

// searcher returns a gateway client when a gateway URL is configured and a
// signing Pricepi client otherwise.
func (a *app) searcher(cmd *cobra.Command) (pricepi.Searcher, error) {
	if gw := a.v.GetString(keyGateway); gw != "" {
		return apiclient.New(gw), nil
	}

	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	return a.client(cmd, cfg), nil
}
