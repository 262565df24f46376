package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/telemetry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump [path]",
	Short: "Write the effective configuration as YAML",
	Long: `Write the embedded defaults merged with --config to path, or to
stdout when no path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Cfg()
		if len(args) == 1 {
			return cfg.WriteYAML(args[0])
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Summarize a saved snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dump, err := telemetry.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		s := dump.State
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "seed %d  tick %d  reason %q\n", dump.Seed, s.Tick, dump.Reason)
		fmt.Fprintf(out, "arena %gx%g\n", 2*dump.HalfWidth, 2*dump.HalfHeight)
		fmt.Fprintf(out, "score %d  health %d/%d  destroyed %v\n", s.Score, s.Health, s.MaxHealth, s.AgentDestroyed)
		fmt.Fprintf(out, "targets %d  projectiles %d\n", len(s.Targets), len(s.Projectiles))

		stages := make(map[uint32]int)
		for _, t := range s.Targets {
			stages[t.Stage]++
		}
		for stage := uint32(0); len(stages) > 0; stage++ {
			if n, ok := stages[stage]; ok {
				fmt.Fprintf(out, "  stage %d: %d\n", stage, n)
				delete(stages, stage)
			}
		}
		for _, b := range dump.Bookmarks {
			fmt.Fprintf(out, "bookmark %-14s tick %-6d %s\n", b.Type, b.Tick, b.Description)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(inspectCmd)
}
