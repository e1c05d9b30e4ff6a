package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sasreliability/draftflow/internal/service"
)

// approvalWindow is how long a surfaced approval request stays actionable.
// Expiry is enforced here at the surface; the gateway only checks the pending
// precondition, so a late decision is rejected by status, not by clock.
const approvalWindow = 24 * time.Hour

const (
	actionApprove     = "approve"
	actionDecline     = "decline"
	actionRequestEdit = "edit"
)

func customID(action, draftID string) string {
	return "draft:" + action + ":" + draftID
}

func parseCustomID(id string) (action, draftID string, ok bool) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[0] != "draft" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	action, draftID, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	if i.Message != nil && time.Since(i.Message.Timestamp) > approvalWindow {
		b.disableComponents(i)
		b.respondEphemeral(i, "⏰ This approval request has expired.")
		return
	}

	reviewer := reviewerName(i)
	ctx := context.Background()

	var svcAction service.Action
	var reason string
	var resultEmbed *discordgo.MessageEmbed

	switch action {
	case actionApprove:
		svcAction = service.ActionApprove
		resultEmbed = &discordgo.MessageEmbed{
			Title:       "✅ Post Approved",
			Description: fmt.Sprintf("Post `%s` approved by %s", draftID, reviewer),
			Color:       colorSuccess,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
	case actionDecline:
		svcAction = service.ActionDecline
		reason = "Rejected via Discord button"
		resultEmbed = &discordgo.MessageEmbed{
			Title:       "❌ Post Rejected",
			Description: fmt.Sprintf("Post `%s` rejected by %s", draftID, reviewer),
			Color:       colorFailure,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
	case actionRequestEdit:
		svcAction = service.ActionRequestEdit
		reason = "Edit requested via Discord button"
		resultEmbed = &discordgo.MessageEmbed{
			Title:       "📝 Edit Requested",
			Description: fmt.Sprintf("Edit requested for post `%s` by %s", draftID, reviewer),
			Color:       0xFFA500,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
	default:
		return
	}

	_, err := b.as.Decide(ctx, draftID, svcAction, reviewer, reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTransition):
			b.respondEphemeral(i, fmt.Sprintf("⚠️ Post `%s` has already been decided.", draftID))
		case errors.Is(err, service.ErrNotFound):
			b.respondEphemeral(i, fmt.Sprintf("❌ Post `%s` no longer exists.", draftID))
		default:
			slog.Error("failed to apply decision", "draft_id", draftID, "error", err.Error())
			b.respondEphemeral(i, "❌ Error processing approval. Please try again.")
		}
		return
	}

	// Edit requests keep the draft pending; leave the buttons live so the
	// reviewer can still decide after the content is revised.
	disabled := svcAction != service.ActionRequestEdit

	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    i.Message.Content,
			Embeds:     append(i.Message.Embeds, resultEmbed),
			Components: approvalComponents(draftID, disabled),
		},
	}
	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		slog.Error("failed to update approval message", "draft_id", draftID, "error", err.Error())
	}
}

func (b *Bot) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Error("failed to send ephemeral response", "error", err.Error())
	}
}

func (b *Bot) disableComponents(i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	_, draftID, ok := parseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	components := approvalComponents(draftID, true)
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    i.Message.ChannelID,
		ID:         i.Message.ID,
		Components: &components,
	})
	if err != nil {
		slog.Error("failed to disable expired components", "error", err.Error())
	}
}

func reviewerName(i *discordgo.InteractionCreate) string {
	var user *discordgo.User
	if i.Member != nil {
		user = i.Member.User
	} else {
		user = i.User
	}
	if user == nil {
		return "unknown"
	}
	if user.Discriminator != "" && user.Discriminator != "0" {
		return user.Username + "#" + user.Discriminator
	}
	return user.Username
}
