package handler

import (
	"time"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/pkg/leveling"
	"phasbot/internal/services"
)

type groupProfile struct {
	container *do.Injector
}

func (gr *groupProfile) Show(c echo.Context) error {
	ctx := c.Request().Context()
	guildID := c.Param("guild")
	userID := c.Param("user")

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	profile, err := serviceProfile.FindProfile(ctx, userID, guildID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}

	now := time.Now()
	return httpx.RestAbort(c, map[string]any{
		"profile":         profile,
		"progress":        leveling.LevelProgress(profile.XP),
		"effective_level": services.EffectiveLevel(profile),
		"multiplier":      services.ComputeMultiplier(profile, now, services.MultiplierOptions{MessageLength: -1}),
		"active_boosters": profile.ActiveBoosters(now),
	}, nil)
}

func (gr *groupProfile) Boosters(c echo.Context) error {
	ctx := c.Request().Context()

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	boosters, err := serviceProfile.ListActiveBoosters(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, boosters, nil)
}
