package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/previewkit/internal/presentation/tui"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the previews a running listener has received",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("url")
		raw, _ := cmd.Flags().GetBool("raw")

		previews, err := fetchPreviews(cmd, strings.TrimRight(base, "/")+"/previews")
		if err != nil {
			return err
		}

		md := tui.PreviewsMarkdown(previews)
		out := cmd.OutOrStdout()
		if raw || !isTerminal(out) {
			_, err := fmt.Fprint(out, md)
			return err
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func fetchPreviews(cmd *cobra.Command, url string) ([]*domain.PreviewRequest, error) {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("is the listener running? %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	var previews []*domain.PreviewRequest
	if err := json.NewDecoder(resp.Body).Decode(&previews); err != nil {
		return nil, fmt.Errorf("decode previews: %w", err)
	}
	return previews, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("url", "http://127.0.0.1:8080", "Listener HTTP API")
	statusCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
