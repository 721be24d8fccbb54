package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	tuiCmd := app.createTUICommand(ctx)

	rootCmd := &cobra.Command{
		Use:           "chapterplay",
		Short:         "Play audio tracks grouped by chapter",
		Long:          `A terminal player for audio tracks named "<chapter>-<NN>.mp3" and grouped by chapter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.loadConfig()
		},
		// Без подкоманды запускается TUI
		RunE: tuiCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", defaultConfigPath, "path to the config file")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createSyncCommand(ctx))
	rootCmd.AddCommand(app.createRemoveCommand(ctx))

	return rootCmd
}
