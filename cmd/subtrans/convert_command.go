package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/logging"
	"subtrans/internal/translate"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputDirFlag string

	cmd := &cobra.Command{
		Use:   "convert <input-file>",
		Short: "Convert a SUB file to SRT without translating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			outputDir := outputDirFlag
			if outputDir == "" {
				outputDir = cfg.Output.Directory
			}

			svc := translate.NewService(nil, logger)
			path, err := svc.Convert(cmd.Context(), translate.ConvertRequest{
				InputPath: args[0],
				OutputDir: outputDir,
			})
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Directory for the converted SRT file")
	return cmd
}
