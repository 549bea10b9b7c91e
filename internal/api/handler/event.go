package handler

import (
	"errors"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/models"
	"phasbot/internal/services"
)

type groupEvent struct {
	container *do.Injector
}

func (gr *groupEvent) Message(c echo.Context) error {
	ctx := c.Request().Context()

	var event models.MessageEvent
	if err := c.Bind(&event); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if event.UserID == "" || event.GuildID == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user_id and guild_id are required"), errorx.Invalid))
	}

	serviceXP, err := do.Invoke[*services.ServiceXP](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceXP.HandleMessage(ctx, &event)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupEvent) Action(c echo.Context) error {
	ctx := c.Request().Context()

	var event models.ActionEvent
	if err := c.Bind(&event); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if event.UserID == "" || event.GuildID == "" || event.Action == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user_id, guild_id and action are required"), errorx.Invalid))
	}

	serviceXP, err := do.Invoke[*services.ServiceXP](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceXP.HandleAction(ctx, &event)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupEvent) MemberJoin(c echo.Context) error {
	return gr.memberEvent(c, true)
}

func (gr *groupEvent) MemberLeave(c echo.Context) error {
	return gr.memberEvent(c, false)
}

func (gr *groupEvent) memberEvent(c echo.Context, joined bool) error {
	ctx := c.Request().Context()

	var event models.MemberEvent
	if err := c.Bind(&event); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if event.UserID == "" || event.GuildID == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user_id and guild_id are required"), errorx.Invalid))
	}

	serviceGreeting, err := do.Invoke[*services.ServiceGreeting](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if joined {
		err = serviceGreeting.MemberJoined(ctx, &event)
	} else {
		err = serviceGreeting.MemberLeft(ctx, &event)
	}
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]any{"ok": true}, nil)
}
