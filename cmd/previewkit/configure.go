package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/previewkit/internal/config"
	"github.com/aretw0/previewkit/pkg/classpath"
	"github.com/aretw0/previewkit/pkg/preview"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Send the preview configuration to the IDE",
	Long: `Builds the preview host configuration and sends it once to the IDE listening on
the local port given by compose.desktop.preview.ide.port.

Values are read, in increasing priority, from the config file, -P properties,
explicit flags and finally the environment for anything still unset.

An IDE that cannot be reached is logged and is not an error.`,
	Example: `  previewkit configure -P compose.desktop.preview.target=app.MainKt.AppPreview \
    -P compose.desktop.preview.ide.port=50123 --classpath "$(cat runtime.cp)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigureConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		home, err := os.UserHomeDir()
		if err != nil {
			logger.Debug("no home directory, local repositories skipped", "err", err)
		}

		task := &preview.Task{
			PreviewClasspath: cfg.PreviewClasspath,
			UITooling:        cfg.UITooling,
			HostClasspath:    cfg.HostClasspath,
			JavaHome:         cfg.JavaHome,
			Target:           cfg.Target,
			IDEPort:          cfg.IDEPort,
			Resolver:         classpath.NewRepositoryResolver(classpath.DefaultRepositories(home, cfg.GradleUserHome)...),
			Logger:           logger,
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(task.Request(cmd.Context()))
		}
		return task.Run(cmd.Context())
	},
}

func loadConfigureConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	props, _ := cmd.Flags().GetStringToString("property")
	if err := config.ApplyProperties(cfg, props); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target, _ = flags.GetString("target")
	}
	if flags.Changed("port") {
		cfg.IDEPort, _ = flags.GetString("port")
	}
	if flags.Changed("java-home") {
		cfg.JavaHome, _ = flags.GetString("java-home")
	}
	if flags.Changed("classpath") {
		v, _ := flags.GetString("classpath")
		cfg.PreviewClasspath = classpath.Split(v)
	}
	if flags.Changed("ui-tooling") {
		v, _ := flags.GetString("ui-tooling")
		cfg.UITooling = classpath.Split(v)
	}
	if flags.Changed("host-classpath") {
		v, _ := flags.GetString("host-classpath")
		cfg.HostClasspath = classpath.Split(v)
	}

	config.ApplyEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("incomplete configuration:\n%w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringP("config", "c", "", "YAML or TOML file with preview settings")
	configureCmd.Flags().StringToStringP("property", "P", nil, "Build property as key=value (repeatable)")
	configureCmd.Flags().String("target", "", "Fully qualified name of the preview function")
	configureCmd.Flags().String("port", "", "IDE port")
	configureCmd.Flags().String("java-home", "", "JDK used to run the preview host")
	configureCmd.Flags().String("classpath", "", "Preview runtime classpath (path list)")
	configureCmd.Flags().String("ui-tooling", "", "UI tooling jars (path list)")
	configureCmd.Flags().String("host-classpath", "", "Preview host classpath (path list)")
	configureCmd.Flags().Bool("dry-run", false, "Print the payload as JSON instead of sending it")
}
