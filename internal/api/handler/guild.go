package handler

import (
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/models"
	"phasbot/internal/services"
)

type groupGuild struct {
	container *do.Injector
}

func (gr *groupGuild) ShowConfig(c echo.Context) error {
	ctx := c.Request().Context()

	serviceGuild, err := do.Invoke[*services.ServiceGuild](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	config, err := serviceGuild.GetConfig(ctx, c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, config, nil)
}

func (gr *groupGuild) SaveConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var config models.GuildConfig
	if err := c.Bind(&config); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	config.GuildID = c.Param("guild")

	serviceGuild, err := do.Invoke[*services.ServiceGuild](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if err := serviceGuild.SaveConfig(ctx, &config); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	return httpx.RestAbort(c, config, nil)
}
