package main

import (
	"github.com/google/uuid"

	"rushjob-engine/internal/config"
	"rushjob-engine/internal/domain"
)

func seedOrgs(cfg config.Config) []domain.Organization {
	out := make([]domain.Organization, 0, len(cfg.Organizations))
	for _, o := range cfg.Organizations {
		out = append(out, domain.Organization{
			Slug:       o.Slug,
			Name:       o.Name,
			SourceType: o.SourceType,
			BoardToken: o.BoardToken,
			Active:     o.Active == nil || *o.Active,
		})
	}
	return out
}

func seedAlerts(cfg config.Config) []domain.Alert {
	out := make([]domain.Alert, 0, len(cfg.Alerts))
	for _, a := range cfg.Alerts {
		id := a.ID
		if id == "" {
			// Stable within a run is enough; the yaml should carry ids for
			// alerts that must survive edits without re-notifying.
			id = uuid.NewString()
		}
		out = append(out, domain.Alert{
			ID:              id,
			Owner:           a.Owner,
			OrgSlugs:        a.Orgs,
			TitleKeywords:   a.TitleKeywords,
			ExcludeKeywords: a.ExcludeKeywords,
			KeywordMode:     a.KeywordMode,
			Locations:       a.Locations,
			Department:      a.Department,
			JobType:         a.JobType,
			Endpoint:        domain.Endpoint{Kind: a.Endpoint.Kind, Ref: a.Endpoint.Ref},
			Active:          a.Active == nil || *a.Active,
		})
	}
	return out
}
