package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/do"

	"phasbot/internal/interfaces"
	"phasbot/internal/models"
)

type ServiceGreeting struct {
	container    *do.Injector
	serviceGuild *ServiceGuild
	notifier     interfaces.Notifier
}

func NewServiceGreeting(container *do.Injector) (*ServiceGreeting, error) {
	serviceGuild, err := do.Invoke[*ServiceGuild](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceGreeting{container, serviceGuild, notifier}, nil
}

// MemberJoined renders the welcome template and emits a greeting event when
// the guild has welcomes enabled.
func (service *ServiceGreeting) MemberJoined(ctx context.Context, event *models.MemberEvent) error {
	config, err := service.serviceGuild.GetConfig(ctx, event.GuildID)
	if err != nil {
		return err
	}

	if !config.WelcomeEnabled || config.WelcomeChannelID == "" {
		return nil
	}

	service.notifier.Greeting(ctx, &models.GreetingEvent{
		GuildID:   event.GuildID,
		ChannelID: config.WelcomeChannelID,
		Message:   RenderGreeting(config.WelcomeTemplate, event),
	})
	return nil
}

func (service *ServiceGreeting) MemberLeft(ctx context.Context, event *models.MemberEvent) error {
	config, err := service.serviceGuild.GetConfig(ctx, event.GuildID)
	if err != nil {
		return err
	}

	if !config.FarewellEnabled || config.FarewellChannelID == "" {
		return nil
	}

	service.notifier.Greeting(ctx, &models.GreetingEvent{
		GuildID:   event.GuildID,
		ChannelID: config.FarewellChannelID,
		Message:   RenderGreeting(config.FarewellTemplate, event),
	})
	return nil
}

// RenderGreeting substitutes the {user}, {guild} and {memberCount}
// placeholders. Unknown placeholders pass through untouched.
func RenderGreeting(template string, event *models.MemberEvent) string {
	r := strings.NewReplacer(
		"{user}", event.Username,
		"{guild}", event.GuildName,
		"{memberCount}", strconv.Itoa(event.MemberCount),
	)
	return r.Replace(template)
}
