package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/sasreliability/draftflow/internal/jobs"
	"github.com/sasreliability/draftflow/internal/models"
)

const (
	colorLinkedIn = 0x0077B5
	colorSuccess  = 0x00FF00
	colorFailure  = 0xFF0000
)

// NewPending sends the approval request message for a pending draft and
// returns its reference. The monitor records the reference; until that write
// lands the draft stays eligible for re-surfacing.
func (b *Bot) NewPending(ctx context.Context, draft *models.Draft) (*jobs.MessageRef, error) {
	if b.cfg.DiscordApprovalChannelID == "" {
		return nil, fmt.Errorf("approval channel not configured")
	}

	msg, err := b.session.ChannelMessageSendComplex(b.cfg.DiscordApprovalChannelID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("🔔 **New LinkedIn Post Pending Approval** (ID: %s)", draft.DraftID),
		Embeds:     []*discordgo.MessageEmbed{b.previewEmbed(draft)},
		Components: approvalComponents(draft.DraftID, false),
	})
	if err != nil {
		return nil, fmt.Errorf("sending approval request: %w", err)
	}

	slog.Info("approval request sent", "draft_id", draft.DraftID, "message_id", msg.ID)
	return &jobs.MessageRef{MessageID: msg.ID, ChannelID: msg.ChannelID}, nil
}

// PublishResult announces a publish outcome on the notification channel.
func (b *Bot) PublishResult(ctx context.Context, draft *models.Draft, success bool, detail string) error {
	if b.cfg.DiscordNotificationChannelID == "" {
		return nil
	}

	var embed *discordgo.MessageEmbed
	if success {
		embed = &discordgo.MessageEmbed{
			Title:       "✅ LinkedIn Post Published Successfully",
			Description: fmt.Sprintf("Post `%s` has been published to LinkedIn!", draft.DraftID),
			Color:       colorSuccess,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "🔗 LinkedIn URL", Value: fmt.Sprintf("[View Post](%s)", detail)},
				{Name: "📝 Content Preview", Value: truncate(draft.Content, 200)},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title:       "❌ LinkedIn Post Publishing Failed",
			Description: fmt.Sprintf("Failed to publish post `%s`", draft.DraftID),
			Color:       colorFailure,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Error", Value: truncate(detail, 1000)},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
	}

	_, err := b.session.ChannelMessageSendEmbed(b.cfg.DiscordNotificationChannelID, embed)
	if err != nil {
		return fmt.Errorf("sending publish notification: %w", err)
	}
	return nil
}

func (b *Bot) previewEmbed(draft *models.Draft) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📱 LinkedIn Post Preview",
		Description: truncate(draft.Content, 500),
		Color:       colorLinkedIn,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Post ID: %s | Created: %s", draft.DraftID, draft.CreatedAt.Format("2006-01-02 15:04")),
		},
	}

	hasImage := "No"
	if (draft.ImagePath != nil && *draft.ImagePath != "") || (draft.ImageBase64 != nil && *draft.ImageBase64 != "") {
		hasImage = "Yes"
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📊 Post Analytics",
		Value:  fmt.Sprintf("**Characters:** %d/%d\n**Has Image:** %s", utf8.RuneCountInString(draft.Content), b.cfg.ContentLimit, hasImage),
		Inline: true,
	})

	if draft.Industry != nil && *draft.Industry != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🏢 Industry", Value: *draft.Industry, Inline: true,
		})
	}
	if draft.Audience != nil && *draft.Audience != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🎯 Target Audience", Value: *draft.Audience, Inline: true,
		})
	}
	if hashtags := extractHashtags(draft.Content); len(hashtags) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "# Hashtags", Value: strings.Join(hashtags, " "), Inline: true,
		})
	}
	if draft.ImagePath != nil && *draft.ImagePath != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: *draft.ImagePath}
	}

	return embed
}

func approvalComponents(draftID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✅ Approve",
					Style:    discordgo.SuccessButton,
					CustomID: customID(actionApprove, draftID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "❌ Reject",
					Style:    discordgo.DangerButton,
					CustomID: customID(actionDecline, draftID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "📝 Request Edit",
					Style:    discordgo.SecondaryButton,
					CustomID: customID(actionRequestEdit, draftID),
					Disabled: disabled,
				},
			},
		},
	}
}
