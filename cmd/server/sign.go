package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/marvel"
	"github.com/spf13/cobra"
)

var signParams []string

// signCmd prints a signed upstream URL, which is handy for poking at the
// upstream API with curl using the configured keys.
var signCmd = &cobra.Command{
	Use:     "sign <path>",
	Short:   "Print a signed upstream URL for path",
	Example: "  marvel-api sign /characters --param name=Hulk",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upstream, err := config.LoadUpstream(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		signed, err := signedURL(*upstream, args[0], signParams)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
		return err
	},
}

func init() {
	signCmd.Flags().StringArrayVar(&signParams, "param", nil, "query parameter as key=value (repeatable)")
}

func signedURL(cfg config.UpstreamConfig, path string, pairs []string) (string, error) {
	signer, err := marvel.NewSigner(cfg.PublicKey, cfg.PrivateKey)
	if err != nil {
		return "", err
	}

	params := marvel.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return "", fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}
		params[key] = value
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return marvel.NewQueryBuilder(cfg.BaseURL, signer).Build(path, params), nil
}
