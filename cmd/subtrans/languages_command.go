package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List supported target language codes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, lang := range language.All() {
				rows = append(rows, []string{lang.Code, lang.Display})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"CODE", "LANGUAGE"},
				rows,
			))
			return nil
		},
	}
}
