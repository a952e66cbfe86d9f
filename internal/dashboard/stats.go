// Package dashboard agrège les posts d'un utilisateur par statut et plateforme.
package dashboard

import (
	"context"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/cache"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
)

type PlatformCounts struct {
	Instagram int64 `json:"instagram"`
	LinkedIn  int64 `json:"linkedin"`
	Twitter   int64 `json:"twitter"`
}

type Stats struct {
	TotalPosts       int64          `json:"total_posts"`
	DraftPosts       int64          `json:"draft_posts"`
	ScheduledPosts   int64          `json:"scheduled_posts"`
	ReadyToPostPosts int64          `json:"ready_to_post_posts"`
	PostedPosts      int64          `json:"posted_posts"`
	Platforms        PlatformCounts `json:"platforms"`
}

// Compute calcule les statistiques, en passant par le cache Redis s'il est actif.
// Une panne du cache n'empêche jamais le calcul.
func Compute(ctx context.Context, userID uint) (Stats, error) {
	key := cache.StatsKey(userID)

	var cached Stats
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logs.LogJSON("WARN", "Stats cache read failed", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
		})
	}
	if hit {
		return cached, nil
	}

	stats, err := fromStore(userID)
	if err != nil {
		return Stats{}, err
	}

	if err := cache.SetJSON(ctx, key, stats, cache.StatsTTL); err != nil {
		logs.LogJSON("WARN", "Stats cache write failed", map[string]interface{}{
			"error":  err.Error(),
			"userID": userID,
		})
	}
	return stats, nil
}

func fromStore(userID uint) (Stats, error) {
	byStatus, err := post.Counts(userID, "status")
	if err != nil {
		return Stats{}, err
	}
	byPlatform, err := post.Counts(userID, "platform")
	if err != nil {
		return Stats{}, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	return Stats{
		TotalPosts:       total,
		DraftPosts:       byStatus[post.StatusDraft],
		ScheduledPosts:   byStatus[post.StatusScheduled],
		ReadyToPostPosts: byStatus[post.StatusReadyToPost],
		PostedPosts:      byStatus[post.StatusPosted],
		Platforms: PlatformCounts{
			Instagram: byPlatform[post.PlatformInstagram],
			LinkedIn:  byPlatform[post.PlatformLinkedIn],
			Twitter:   byPlatform[post.PlatformTwitter],
		},
	}, nil
}
