package channels

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/wrmarte/MuscleRHB/pkg/greeting"
	"github.com/wrmarte/MuscleRHB/pkg/moralis"
)

// cardToEmbed renders a greeting card as a native Discord embed.
func cardToEmbed(card greeting.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       card.Title,
		Description: card.Description,
		Color:       card.Color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if card.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: card.ThumbnailURL}
	}
	if card.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: card.Footer}
	}
	return embed
}

func (c *DiscordChannel) sendCard(channelID string, card greeting.Card) error {
	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{cardToEmbed(card)},
	}

	if card.ButtonID != "" {
		msg.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    card.ButtonLabel,
						Style:    discordgo.SuccessButton,
						CustomID: card.ButtonID,
					},
				},
			},
		}
	}

	_, err := c.session.ChannelMessageSendComplex(channelID, msg)
	return err
}

// assetEmbed renders one NFT as a showcase embed with traits, rank and a
// marketplace link.
func (c *DiscordChannel) assetEmbed(asset moralis.Asset) *discordgo.MessageEmbed {
	name := asset.Name
	if name == "" {
		name = fmt.Sprintf("%s #%s", c.deps.Collection.Name, asset.TokenID)
	}

	openSea := fmt.Sprintf("%s/%s/%s",
		c.deps.Collection.OpenSeaBaseURL, c.deps.Collection.Contract, asset.TokenID)

	return &discordgo.MessageEmbed{
		Title: "🎲 " + name,
		Description: fmt.Sprintf("%s\n\n🏆 **Rank**: %s\n🌊 [View on OpenSea](%s)",
			asset.TraitLines(), asset.Rank, openSea),
		Color:     greeting.RandomAccentColor(),
		Image:     &discordgo.MessageEmbedImage{URL: asset.ImageURL},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Token #" + asset.TokenID},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func (c *DiscordChannel) sendAsset(channelID string, asset moralis.Asset) error {
	_, err := c.session.ChannelMessageSendEmbed(channelID, c.assetEmbed(asset))
	return err
}

// sendCollage posts a composed PNG with a caption embed.
func (c *DiscordChannel) sendCollage(channelID, title string, png []byte) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:     title,
			Color:     greeting.RandomAccentColor(),
			Image:     &discordgo.MessageEmbedImage{URL: "attachment://collage.png"},
			Timestamp: time.Now().Format(time.RFC3339),
		}},
		Files: []*discordgo.File{{
			Name:        "collage.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	})
	return err
}
