package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phasbot/internal/models"
)

func TestRenderGreeting(t *testing.T) {
	event := &models.MemberEvent{
		Username:    "ghosthunter42",
		GuildName:   "Phasmo Central",
		MemberCount: 137,
	}

	got := RenderGreeting("Welcome to {guild}, {user}! You are investigator #{memberCount}.", event)
	assert.Equal(t, "Welcome to Phasmo Central, ghosthunter42! You are investigator #137.", got)

	// repeated placeholders all substitute
	got = RenderGreeting("{user} {user}", event)
	assert.Equal(t, "ghosthunter42 ghosthunter42", got)

	// unknown placeholders pass through
	got = RenderGreeting("Hi {user}, check {rules}!", event)
	assert.Equal(t, "Hi ghosthunter42, check {rules}!", got)

	// plain text untouched
	assert.Equal(t, "no placeholders", RenderGreeting("no placeholders", event))
}
