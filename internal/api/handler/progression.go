package handler

import (
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/services"
)

type groupProgression struct {
	container *do.Injector
}

func (gr *groupProgression) Achievements(c echo.Context) error {
	ctx := c.Request().Context()

	serviceAchievement, err := do.Invoke[*services.ServiceAchievement](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	achievements, err := serviceAchievement.GetAchievementsWithStatus(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, achievements, nil)
}

func (gr *groupProgression) Challenges(c echo.Context) error {
	ctx := c.Request().Context()

	serviceChallenge, err := do.Invoke[*services.ServiceChallenge](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	challenges, err := serviceChallenge.GetChallengesWithStatus(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, challenges, nil)
}

func (gr *groupProgression) Prestige(c echo.Context) error {
	ctx := c.Request().Context()

	servicePrestige, err := do.Invoke[*services.ServicePrestige](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := servicePrestige.Perform(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupProgression) PrestigeBonuses(c echo.Context) error {
	ctx := c.Request().Context()

	serviceProfile, err := do.Invoke[*services.ServiceProfile](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	profile, err := serviceProfile.FindProfile(ctx, c.Param("user"), c.Param("guild"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.NotExist))
	}

	return httpx.RestAbort(c, services.Bonuses(profile.Prestige), nil)
}
