package cmd

import (
	"sort"

	"github.com/spf13/cobra"
)

func signCmd(a *app) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "sign <query>",
		Short: "Print a signed request without sending it",
		Long: "Computes the authcode for a search exactly as search would and prints\n" +
			"the request parameters and URL. Useful for debugging signature mismatches.",
		Example: `  pricepi sign "samsung galaxy s5" --currency USD --output json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}

			cfg, err := a.config()
			if err != nil {
				return err
			}

			client := a.client(cmd, cfg)
			sig, err := client.Sign(req)
			if err != nil {
				return err
			}

			params := make(map[string]string, len(sig.Values))
			for k := range sig.Values {
				params[k] = sig.Values.Get(k)
			}

			if a.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), signedRequest{
					URL:       client.URL(sig),
					Timestamp: sig.Timestamp,
					AuthCode:  sig.AuthCode,
					Params:    params,
				})
			}

			keys := make([]string, 0, len(params))
			for k := range params {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			tw := newTabWriter(cmd.OutOrStdout())
			for _, k := range keys {
				tw.writef("%s:\t%s\n", k, params[k])
			}
			tw.writef("url:\t%s\n", client.URL(sig))
			return tw.finish()
		},
	}
	flags.register(cmd)

	return cmd
}

type signedRequest struct {
	URL       string            `json:"url"`
	Timestamp int64             `json:"timestamp"`
	AuthCode  string            `json:"authcode"`
	Params    map[string]string `json:"params"`
}
