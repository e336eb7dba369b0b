package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/labelselect/pkg/labelselect"
	"github.com/vango-dev/labelselect/pkg/server"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		pretty     bool
		selects    []string
		live       bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a page file to HTML",
		Long: `Render builds every control in the page file and prints the HTML
document to stdout.

Examples:
  labelselect render
  labelselect render -c page.yaml --pretty
  labelselect render --select lang=fr --select country=be`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPage(configPath)
			if err != nil {
				return err
			}
			selections, err := parseSelections(selects)
			if err != nil {
				return err
			}

			page, err := server.NewPage(cfg)
			if err != nil {
				return err
			}
			for _, sel := range selections {
				if _, err := page.Call(context.Background(), sel[0], []any{labelselect.CmdSetSelected, sel[1]}); err != nil {
					return err
				}
			}

			html, err := page.Document(pretty, !live)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Page file (default: labelselect.yaml in the working directory)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringArrayVar(&selects, "select", nil, "Select an option before rendering (host=optionID, repeatable)")
	cmd.Flags().BoolVar(&live, "live", false, "Keep handle markers and the client script")

	return cmd
}
