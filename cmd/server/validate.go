package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio.dev/internal/scene"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check content files and the scene graph without starting the server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		g, err := scene.Network()
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "content ok: %d projects, %d skill groups, %d positions, %d achievements\n",
			len(cfg.Projects.Projects), len(cfg.Site.Skills), len(cfg.Site.Experience), len(cfg.Site.Achievements))
		fmt.Fprintf(out, "scene ok: %d nodes, %d edges, %d backbone edges\n", len(g.Nodes), len(g.Edges), len(g.MST()))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&serveDataPath, "data", "", "content directory (overrides DATA_PATH)")
	rootCmd.AddCommand(validateCmd)
}
