// Package demo generates the synthetic snapshot the dashboard demo runs on.
// Generation is seeded so repeated runs produce identical data.
package demo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/authlens/change-analytics/internal/domain/change"
)

var workspaces = []string{
	"SampleCompany-NA",
	"SampleCompany-EMEA",
	"SampleCompany-LATAM",
	"SampleCompany-APAC",
}

var dataSources = []string{
	"Meta",
	"Google Ads",
	"Amazon Advertising",
	"Google Sheets",
	"LinkedIn Ads",
	"TikTok Ads",
	"Twitter Ads",
}

var datastreamNames = map[string][]string{
	"Amazon Advertising": {
		"Amazon_Campaigns_v2", "Amazon_Keywords_Daily", "Amazon_ProductAds_Performance",
		"Amazon_SponsoredBrands_Stats", "Amazon_DSP_Audiences", "Amazon_AttributionReports",
	},
	"Google Ads": {
		"GoogleAds_CampaignStats", "GoogleAds_Keywords_Hourly", "GoogleAds_AdGroups_v1",
		"GoogleAds_SearchTerms", "GoogleAds_Extensions_Performance", "GoogleAds_Shopping_Data",
	},
	"Meta": {
		"Meta_CampaignInsights", "Meta_AdSetPerformance", "Meta_CreativeStats",
		"Meta_AudienceInsights", "Meta_VideoMetrics", "Meta_ConversionData",
	},
	"Google Sheets": {
		"GoogleSheets_MarketingBudget", "GoogleSheets_CampaignMapping", "GoogleSheets_KPIDashboard",
		"GoogleSheets_CostAllocation", "GoogleSheets_PerformanceTargets",
	},
	"LinkedIn Ads": {
		"LinkedIn_CampaignAnalytics", "LinkedIn_SponsoredContent", "LinkedIn_TextAds_Performance",
		"LinkedIn_VideoAds_Stats", "LinkedIn_AudienceInsights",
	},
	"TikTok Ads": {
		"TikTok_CampaignPerformance", "TikTok_AdGroupStats", "TikTok_CreativeInsights",
		"TikTok_AudienceData", "TikTok_ConversionTracking",
	},
	"Twitter Ads": {
		"Twitter_CampaignMetrics", "Twitter_TweetEngagement", "Twitter_AudienceInsights",
		"Twitter_ConversionEvents", "Twitter_VideoMetrics",
	},
}

var permissionTypes = []string{
	"Campaign Read Access",
	"Campaign Write Access",
	"Audience Data Access",
	"Conversion Tracking",
	"Reporting API Access",
	"Creative Management",
	"Budget Management",
	"Analytics Data",
	"User Management",
	"Account Settings",
}

// Options controls dataset generation
type Options struct {
	Seed       int64
	Now        time.Time
	EventCount int
	SpanDays   int
}

// DefaultOptions mirrors the original demo: ~200 changes over 90 days
func DefaultOptions(now time.Time) Options {
	return Options{Seed: 1, Now: now.UTC(), EventCount: 200, SpanDays: 90}
}

// GenerateSnapshot produces a validated snapshot of authorizations and
// change events for the configured period.
func GenerateSnapshot(opts Options) *change.Snapshot {
	rng := rand.New(rand.NewSource(opts.Seed))
	auths := generateAuthorizations(rng, opts.Now)
	events := generateEvents(rng, auths, opts)
	return &change.Snapshot{Events: events, Authorizations: auths}
}

func generateAuthorizations(rng *rand.Rand, now time.Time) []change.Authorization {
	var auths []change.Authorization
	for i, source := range dataSources {
		for w, workspace := range workspaces {
			if i+w >= 20 {
				continue
			}
			id := fmt.Sprintf("auth-%s-%d", slug(source), w+1)
			region := strings.SplitN(workspace, "-", 2)[1]

			created := now.Add(-time.Duration(rng.Int63n(int64(90 * 24 * time.Hour))))
			var lastUsed *time.Time
			if rng.Float64() > 0.2 {
				t := now.Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour))))
				lastUsed = &t
			}

			status := change.StatusConnected
			if rng.Float64() <= 0.1 {
				if rng.Float64() > 0.5 {
					status = change.StatusExpired
				} else {
					status = change.StatusPending
				}
			}

			auths = append(auths, change.Authorization{
				ID:              id,
				Name:            fmt.Sprintf("%s %s Account", source, region),
				DataSourceType:  source,
				Workspace:       workspace,
				CreatedAt:       created,
				LastUsedAt:      lastUsed,
				EntityCount:     rng.Intn(25) + 5,
				DatastreamCount: rng.Intn(10) + 2,
				Status:          status,
			})
		}
	}
	return auths
}

func generateEvents(rng *rand.Rand, auths []change.Authorization, opts Options) []change.Event {
	events := make([]change.Event, 0, opts.EventCount)
	span := time.Duration(opts.SpanDays) * 24 * time.Hour
	start := opts.Now.Add(-span)

	for i := 0; i < opts.EventCount; i++ {
		auth := auths[rng.Intn(len(auths))]
		streams := pickStreams(rng, datastreamNames[auth.DataSourceType])

		action := change.ActionAdded
		if rng.Float64() > 0.6 {
			action = change.ActionRemoved
		}

		events = append(events, change.Event{
			ID:                 fmt.Sprintf("perm-%d", i+1),
			AuthorizationID:    auth.ID,
			SubjectName:        fmt.Sprintf("%s %s %d", auth.DataSourceType, permissionTypes[rng.Intn(len(permissionTypes))], i+1),
			SubjectKind:        change.SubjectPermission,
			Action:             action,
			OccurredAt:         start.Add(time.Duration(rng.Int63n(int64(span)))),
			Workspace:          auth.Workspace,
			DataSource:         auth.DataSourceType,
			RelatedStreamNames: streams,
		})
	}
	return events
}

func pickStreams(rng *rand.Rand, available []string) []string {
	if len(available) == 0 {
		return nil
	}
	count := rng.Intn(5) + 1
	var picked []string
	for i := 0; i < count; i++ {
		candidate := available[rng.Intn(len(available))]
		if !contains(picked, candidate) {
			picked = append(picked, candidate)
		}
	}
	return picked
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
