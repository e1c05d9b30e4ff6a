package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	config "github.com/sasreliability/draftflow/configs"
	"github.com/sasreliability/draftflow/internal/service"
)

// Bot owns the Discord session. It is both the approval surface (button
// interactions feed the approval service) and the jobs.Notifier
// implementation (embeds for new pending drafts and publish outcomes).
type Bot struct {
	session *discordgo.Session
	cfg     config.Config
	as      service.ApprovalService
}

func New(cfg config.Config, as service.ApprovalService) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		session: session,
		cfg:     cfg,
		as:      as,
	}
	session.AddHandler(b.onInteractionCreate)

	return b, nil
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}
