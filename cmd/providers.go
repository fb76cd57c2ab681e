// This file implements provider management commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philokalos/promptlens/core/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Inspect and validate configured AI providers",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured providers in fallback order",
	RunE:  runProvidersList,
}

var providersValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every enabled provider's API key",
	RunE:  runProvidersValidate,
}

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersValidateCmd)
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	manager, err := loadConfig()
	if err != nil {
		return err
	}

	configs := manager.Get().Providers
	if len(configs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No providers configured. Set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY, or edit the config file.")
		return nil
	}

	primary := providers.PrimaryProvider(configs)
	w := cmd.OutOrStdout()

	for _, c := range providers.EnabledConfigs(configs) {
		marker := " "
		if primary != nil && c.Type() == primary.Type() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s priority %d  model %s\n", marker, c.Type(), c.Priority, c.ModelOrDefault())
	}

	for _, c := range configs {
		if !c.Enabled {
			fmt.Fprintf(w, "  %-10s %s(disabled)%s\n", c.Type(), colorGray, colorReset)
		}
	}
	return nil
}

func runProvidersValidate(cmd *cobra.Command, args []string) error {
	manager, err := loadConfig()
	if err != nil {
		return err
	}

	enabled := providers.EnabledConfigs(manager.Get().Providers)
	if len(enabled) == 0 {
		return fmt.Errorf("no provider configured")
	}

	registry := providers.NewRegistry()
	if err := registry.RegisterConfigs(enabled); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	failures := 0
	for _, c := range enabled {
		valid, err := registry.ValidateKey(cmd.Context(), c.Type(), c.APIKey)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%s✗ %-10s%s %v\n", colorRed, c.Type(), colorReset, err)
			failures++
		case !valid:
			fmt.Fprintf(w, "%s✗ %-10s%s invalid API key\n", colorRed, c.Type(), colorReset)
			failures++
		default:
			fmt.Fprintf(w, "%s✓ %-10s%s key is valid\n", colorGreen, c.Type(), colorReset)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d provider(s) failed validation", failures)
	}
	return nil
}
