package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/labelselect/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		watch      bool
		noMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a page file over HTTP and WebSocket",
		Long: `Serve the page file with live controls. Clicks in the browser are
handled on the server and the updated HTML is pushed back.

Examples:
  labelselect serve
  labelselect serve -c page.yaml --addr :8080 --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPage(configPath)
			if err != nil {
				return err
			}

			sc := server.FromPage(cfg)
			if addr != "" {
				sc.Address = addr
			}
			if noMetrics {
				sc.Metrics = false
			}
			s := server.New(cfg, sc)

			if watch {
				w, err := server.Watch(cfg.Path(), s)
				if err != nil {
					return err
				}
				defer w.Close()
			}

			success(cmd, "serving %s on %s", cfg.Path(), sc.Address)
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Page file (default: labelselect.yaml in the working directory)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from the page file)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the page when the file changes")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Disable /metrics and call instrumentation")

	return cmd
}
