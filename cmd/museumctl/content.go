package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/BinhiHeritage_Go/internal/content"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect museum seed content",
	}

	var dir string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Load and check the seed content",
		Long:  "Loads the content built into the server, or the YAML files in --dir, and checks it for broken references.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				c   *content.Content
				err error
			)
			if dir == "" {
				c, err = content.Load()
			} else {
				c, err = content.LoadFS(os.DirFS(dir))
			}
			if err != nil {
				return err
			}

			questions := 0
			for _, p := range c.Provinces {
				questions += len(p.Questions)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d crops, %d provinces, %d questions, %d guide entries, %d wallets\n",
				len(c.Crops), len(c.Provinces), questions, len(c.Guide.Entries), len(c.Wallets))
			return nil
		},
	}
	validate.Flags().StringVar(&dir, "dir", "", "Directory of YAML content files (default: built-in content)")

	cmd.AddCommand(validate)
	return cmd
}
