package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"

	"phasbot/internal/services"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "👻")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication))

		routesAPIv1.GET("", Hello)

		routesEvents := routesAPIv1.Group("/events")
		routesEvents.Use(RateLimitIngest(cfg.Container))
		{
			e := groupEvent{cfg.Container}
			routesEvents.POST("/message", e.Message)
			routesEvents.POST("/action", e.Action)
			routesEvents.POST("/member-join", e.MemberJoin)
			routesEvents.POST("/member-leave", e.MemberLeave)
		}

		routesGuild := routesAPIv1.Group("/guilds/:guild")
		{
			p := groupProfile{cfg.Container}
			routesGuild.GET("/members/:user/profile", p.Show)
			routesGuild.GET("/members/:user/boosters", p.Boosters)

			pr := groupProgression{cfg.Container}
			routesGuild.GET("/members/:user/achievements", pr.Achievements)
			routesGuild.GET("/members/:user/challenges", pr.Challenges)
			routesGuild.GET("/members/:user/prestige", pr.PrestigeBonuses)
			routesGuild.POST("/members/:user/prestige", pr.Prestige)

			l := groupLeaderboard{cfg.Container}
			routesGuild.GET("/leaderboard/overall", l.Overall)
			routesGuild.GET("/leaderboard/weekly", l.Weekly)
			routesGuild.GET("/leaderboard/prestige", l.Prestige)

			g := groupGuild{cfg.Container}
			routesGuild.GET("/config", g.ShowConfig)
			routesGuild.PUT("/config", g.SaveConfig)
		}

		routesAdmin := routesAPIv1.Group("/admin")
		routesAdmin.Use(RequireRole("admin"))
		{
			a := groupAdmin{cfg.Container}
			routesAdmin.POST("/catalogs/reload", a.ReloadCatalogs)
			routesAdmin.POST("/guilds/:guild/members/:user/boosters", a.GrantBooster)
			routesAdmin.DELETE("/guilds/:guild/members/:user/boosters/:name", a.RevokeBooster)
			routesAdmin.POST("/guilds/:guild/members/:user/boosters/prune", a.PruneBoosters)
		}
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "phasbot", nil)
}
