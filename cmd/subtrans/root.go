package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/translate"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var modeFlag string
	var outputDirFlag string
	var apiKeyFlag string
	var providerFlag string
	var modelFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "subtrans <input-file> <language-codes>",
		Short: "Translate SUB subtitle files to SRT via an LLM provider",
		Long: `subtrans converts a SUB subtitle file to SRT and translates it into one
or more target languages using Gemini or OpenAI. Language codes are
comma-separated (see "subtrans languages" for supported codes).`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			langs, err := language.ParseSet(args[1])
			if err != nil {
				return err
			}

			modeValue := modeFlag
			if modeValue == "" {
				modeValue = cfg.Translation.Mode
			}
			mode, err := translate.ParseMode(modeValue)
			if err != nil {
				return err
			}

			providerCfg, err := cfg.SelectedProvider(providerFlag, apiKeyFlag, modelFlag)
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:            cfg.Logging.Level,
				Format:           cfg.Logging.Format,
				OutputPaths:      cfg.Logging.OutputPaths,
				ErrorOutputPaths: cfg.Logging.ErrorOutputPaths,
				Development:      cfg.Logging.Development,
			})
			if err != nil {
				return err
			}

			provider, err := newProvider(providerCfg, cfg.Translation, logger)
			if err != nil {
				return err
			}

			svc := translate.NewService(provider, logger,
				translate.WithTokenWarnThreshold(cfg.Translation.TokenWarnThreshold),
				translate.WithOrchestratorOptions(
					translate.WithRequestInterval(time.Duration(cfg.Translation.RequestInterval)*time.Second),
				),
			)

			outputDir := outputDirFlag
			if outputDir == "" {
				outputDir = cfg.Output.Directory
			}

			summary, runErr := svc.Run(cmd.Context(), translate.Request{
				InputPath: args[0],
				Languages: langs,
				Mode:      mode,
				OutputDir: outputDir,
			})

			if len(summary.Outcomes) > 0 {
				printSummary(cmd.OutOrStdout(), summary)
			}
			if runErr != nil {
				return fmt.Errorf("translate: %w", runErr)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "Translation mode: batch or simultaneous")
	rootCmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for translated SRT files")
	rootCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Provider API key (overrides config and environment)")
	rootCmd.Flags().StringVar(&providerFlag, "provider", "", "Translation provider: gemini or openai")
	rootCmd.Flags().StringVar(&modelFlag, "model", "", "Provider model name")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
