package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smsflt/sms-filter/internal/classifier"
	"github.com/smsflt/sms-filter/internal/config"
	"github.com/smsflt/sms-filter/internal/model"
)

// classifyCmd runs one-off inference against the configured model without
// touching the store. Useful for smoke-testing a weights file.
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a message from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		clf, err := classifier.LoadLinear(cfg.Model.Path)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}

		text := strings.ToLower(strings.Join(args, " "))
		idx, err := clf.Classify(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}

		fmt.Println(model.StatusFromClass(idx).String())
		return nil
	},
}
