package commands

import (
	"context"
	"fmt"

	"github.com/louisslnn/ODOO-Project/pkg/store/odoo"
)

// connect loads the connection profile and dials the Odoo instance.
func connect(ctx context.Context, profilePath string) (*odoo.Client, odoo.Config, error) {
	cfg, err := odoo.LoadConfig(profilePath)
	if err != nil {
		return nil, odoo.Config{}, fmt.Errorf("failed to load profile %q: %w", profilePath, err)
	}

	client, err := odoo.Connect(ctx, cfg)
	if err != nil {
		return nil, odoo.Config{}, fmt.Errorf("failed to connect to odoo: %w", err)
	}
	return client, cfg, nil
}
