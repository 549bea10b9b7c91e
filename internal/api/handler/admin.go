package handler

import (
	"errors"
	"time"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/models"
	"phasbot/internal/services"
)

type groupAdmin struct {
	container *do.Injector
}

// ReloadCatalogs hot-swaps the achievement and challenge snapshots.
func (gr *groupAdmin) ReloadCatalogs(c echo.Context) error {
	ctx := c.Request().Context()

	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}
	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceAchievement.Reload(ctx); err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if err := serviceChallenge.Reload(ctx); err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]any{
		"achievements": len(serviceAchievement.Catalog().Entries),
		"challenges":   len(serviceChallenge.Catalog().Entries),
	}, nil)
}

type boosterGrantRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Multiplier      float64 `json:"multiplier"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (gr *groupAdmin) GrantBooster(c echo.Context) error {
	ctx := c.Request().Context()

	var req boosterGrantRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if req.Name == "" || req.Multiplier <= 1 || req.DurationMinutes <= 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("name, multiplier > 1 and duration_minutes > 0 are required"), errorx.Invalid))
	}

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	now := time.Now()
	added, err := serviceProfile.AddBooster(ctx, c.Param("user"), c.Param("guild"), models.Booster{
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  req.Multiplier,
		ExpiresAt:   now.Add(time.Duration(req.DurationMinutes) * time.Minute),
		AddedAt:     now,
	})
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if !added {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("profile not found"), errorx.NotExist))
	}

	return httpx.RestAbort(c, map[string]any{"ok": true}, nil)
}

func (gr *groupAdmin) RevokeBooster(c echo.Context) error {
	ctx := c.Request().Context()

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	removed, err := serviceProfile.RemoveBooster(ctx, c.Param("user"), c.Param("guild"), c.Param("name"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if !removed {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("booster not found"), errorx.NotExist))
	}

	return httpx.RestAbort(c, map[string]any{"ok": true}, nil)
}

// PruneBoosters is the explicit maintenance command behind the pure
// multiplier read path.
func (gr *groupAdmin) PruneBoosters(c echo.Context) error {
	ctx := c.Request().Context()

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	pruned, err := serviceProfile.PruneExpiredBoosters(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]any{"pruned": pruned}, nil)
}
