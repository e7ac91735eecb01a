package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "csvdash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set csvdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("data_dir: %s\n", cfg.DataDir)
		fmt.Printf("listen_addr: %s\n", cfg.ListenAddr)
		fmt.Printf("cache_entries: %d\n", cfg.CacheEntries)
		fmt.Printf("default_top_n: %d\n", cfg.DefaultTopN)
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("mbti_file: %s\n", cfg.MBTIFile)
		fmt.Printf("ridership_file: %s\n", cfg.RidershipFile)
		fmt.Printf("hourly_file: %s\n", cfg.HourlyFile)
		fmt.Printf("activists_file: %s\n", cfg.ActivistsFile)
		fmt.Printf("crime_file: %s\n", cfg.CrimeFile)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_dir":
			cfg.DataDir = val
		case "listen_addr":
			cfg.ListenAddr = val
		case "cache_entries":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for cache_entries: %v", val)
			}
			cfg.CacheEntries = i
		case "default_top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for default_top_n: %v", val)
			}
			cfg.DefaultTopN = i
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "mbti_file":
			cfg.MBTIFile = val
		case "ridership_file":
			cfg.RidershipFile = val
		case "hourly_file":
			cfg.HourlyFile = val
		case "activists_file":
			cfg.ActivistsFile = val
		case "crime_file":
			cfg.CrimeFile = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
