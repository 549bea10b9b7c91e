package handler

import (
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/services"
)

type groupLeaderboard struct {
	container *do.Injector
}

func (gr *groupLeaderboard) Overall(c echo.Context) error {
	ctx := c.Request().Context()

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	response, err := serviceLeaderboard.GetOverallLeaderboard(ctx, c.Param("guild"), c.QueryParam("user_id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, response, nil)
}

func (gr *groupLeaderboard) Weekly(c echo.Context) error {
	ctx := c.Request().Context()

	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	response, err := serviceLeaderboard.GetWeeklyLeaderboard(ctx, c.Param("guild"), c.QueryParam("user_id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, response, nil)
}

func (gr *groupLeaderboard) Prestige(c echo.Context) error {
	ctx := c.Request().Context()

	servicePrestige, err := do.Invoke[*services.ServicePrestige](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := servicePrestige.GetLeaderboard(ctx, c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, items, nil)
}
