package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing extraction over REST.

Routes:
  POST /api/fields        Return the fields of the posted record as JSON
  POST /api/index         Extract the posted record and send it to the sink
  GET  /api/rules         List the active extraction rules
  GET  /api/records/:id   Read back a stored record (sqlite sink)
  GET  /version           Print the version
  GET  /healthcheck       Report service health`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ports := &httpapi.Ports{
		Index:   indexService,
		Rules:   ruleService,
		Records: recordService,
	}

	server, err := httpapi.NewServer(ports, version)
	if err != nil {
		return err
	}

	cmd.Printf("HTTP API listening on %s\n", serveAddr)
	return server.Run(cmd.Context(), serveAddr)
}
