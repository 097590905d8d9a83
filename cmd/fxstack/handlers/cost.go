package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/fxstack/internal/pricing"
)

// Cost shows the expected monthly cost of the stack using live Hetzner
// Cloud pricing.
func Cost(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	if err := secrets.RequireHCloud(); err != nil {
		return err
	}

	prices, err := newInfraClient(secrets.HCloudToken).GetPricing(ctx)
	if err != nil {
		return err
	}

	estimate, err := pricing.Calculate(prices, cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		b, err := json.MarshalIndent(estimate, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(b))
		return nil
	}

	fmt.Fprint(stdout, renderCostEstimate(estimate))
	return nil
}
