package config

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/ini.v1"

	"github.com/louisslnn/ODOO-Project/pkg/store/odoo"
)

// Registry reads connection profiles from an ini file (typically ~/.odoorc),
// one section per Odoo instance:
//
//	[production]
//	url      = https://erp.example.com
//	database = prod
//	username = audit-bot
//	password = ...
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (odoo.Config, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (odoo.Config, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return odoo.Config{}, fmt.Errorf("profile %s not found", profile)
	}

	timeout := section.Key("timeout").MustDuration(30 * time.Second)
	cfg := odoo.Config{
		URL:      section.Key("url").String(),
		Database: section.Key("database").String(),
		Username: section.Key("username").String(),
		Password: section.Key("password").String(),
		Timeout:  timeout,
	}
	return cfg, cfg.Validate()
}
