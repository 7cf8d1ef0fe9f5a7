package channels

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/wrmarte/MuscleRHB/pkg/announce"
	"github.com/wrmarte/MuscleRHB/pkg/collage"
	"github.com/wrmarte/MuscleRHB/pkg/commands"
	"github.com/wrmarte/MuscleRHB/pkg/errorx"
	"github.com/wrmarte/MuscleRHB/pkg/greeting"
	"github.com/wrmarte/MuscleRHB/pkg/moralis"
	"github.com/wrmarte/MuscleRHB/pkg/utils"
	"github.com/wrmarte/MuscleRHB/pkg/wallet"
)

const (
	defaultCollageCount = 4
	maxCollageCount     = 9
)

var errNoOwnedAssets = errorx.New(errorx.NoAssets, "❌ You don't own any NFTs in this collection.")

func (c *DiscordChannel) commandDefinitions() []commands.Definition {
	return []commands.Definition{
		{
			Name:        "announce",
			Description: "Post a styled announcement (Announcer role only)",
			Usage:       "!announce [--tag role] [--img url] Title | details",
			Flags:       []string{"tag", "img"},
			Handler:     c.cmdAnnounce,
		},
		{
			Name:        "linkwallet",
			Description: "Link your wallet address to your Discord account",
			Usage:       "!linkwallet 0x...",
			Handler:     c.cmdLinkWallet,
		},
		{
			Name:        "mywallet",
			Description: "Show your linked wallet address",
			Usage:       "!mywallet",
			Handler:     c.cmdMyWallet,
		},
		{
			Name:        "somepimp",
			Description: "Show a random pimp from the collection",
			Usage:       "!somepimp",
			Handler:     c.cmdSomePimp,
		},
		{
			Name:        "mypimp",
			Description: "Show a random pimp from your linked wallet",
			Usage:       "!mypimp",
			Handler:     c.cmdMyPimp,
		},
		{
			Name:        "somepimps",
			Description: "Show a collage of random pimps from the collection",
			Usage:       "!somepimps [count]",
			Handler:     c.cmdSomePimps,
		},
		{
			Name:        "mypimps",
			Description: "Show a collage of pimps from your linked wallet",
			Usage:       "!mypimps [count]",
			Handler:     c.cmdMyPimps,
		},
		{
			Name:        "testwelcome",
			Description: "Preview the welcome message with yourself as the newcomer",
			Usage:       "!testwelcome",
			Handler:     c.cmdTestWelcome,
		},
		{
			Name:        "testrole",
			Description: "Preview the role-grant announcement",
			Usage:       "!testrole [role name]",
			Handler:     c.cmdTestRole,
		},
		{
			Name:        "helpme",
			Description: "List available commands",
			Usage:       "!helpme",
			Aliases:     []string{"help"},
			Handler:     c.cmdHelp,
		},
	}
}

func (c *DiscordChannel) cmdAnnounce(ctx context.Context, req commands.Request) error {
	guildID := req.Metadata["guild_id"]

	isAnnouncer, err := c.memberHasRole(guildID, req.SenderID, c.cfg.AnnouncerRole)
	if err != nil {
		return errorx.Wrap(errorx.Upstream, err, "🚫 Couldn't verify your roles. Try again later.")
	}

	builder := announce.NewBuilder(c.roleResolver(guildID), func(ctx context.Context, url string) ([]byte, string, error) {
		return utils.FetchImage(ctx, url, utils.FetchOptions{})
	})

	ann, err := builder.Build(ctx, announce.Input{
		Title:             req.Args.Title,
		Body:              req.Args.Body,
		Tag:               req.Args.Flags["tag"],
		ImageURL:          req.Args.Flags["img"],
		CallerIsAnnouncer: isAnnouncer,
	})
	if err != nil {
		return err
	}

	if _, err := c.session.ChannelMessageSendComplex(req.ChatID, announcementMessage(req, ann)); err != nil {
		return errorx.Wrap(errorx.Upstream, err, "🚫 Couldn't post the announcement.")
	}

	if ann.Warning != "" {
		if err := req.Reply(ann.Warning); err != nil {
			return err
		}
	}

	c.cleanupTrigger(req)
	return nil
}

func (c *DiscordChannel) cmdLinkWallet(ctx context.Context, req commands.Request) error {
	if len(req.Args.Positional) == 0 {
		return errorx.New(errorx.Validation, "❌ Usage: `!linkwallet 0x...`")
	}

	address := req.Args.Positional[0]
	if err := c.deps.Directory.Link(ctx, req.SenderID, address); err != nil {
		return err
	}

	// the raw address stays out of the channel
	c.cleanupTrigger(req)
	return req.Reply(fmt.Sprintf("✅ Wallet linked for **%s**.", req.SenderName))
}

func (c *DiscordChannel) cmdMyWallet(ctx context.Context, req commands.Request) error {
	address, err := c.deps.Directory.Lookup(ctx, req.SenderID)
	if err != nil {
		return err
	}
	// checksum form for display only; the stored value stays verbatim
	return req.Reply(fmt.Sprintf("💼 Your linked wallet: `%s`", wallet.ChecksumAddress(address)))
}

func (c *DiscordChannel) cmdSomePimp(ctx context.Context, req commands.Request) error {
	asset, err := c.deps.Pimps.RandomFromCollection(ctx)
	if err != nil {
		return err
	}
	return c.sendAsset(req.ChatID, asset)
}

func (c *DiscordChannel) cmdMyPimp(ctx context.Context, req commands.Request) error {
	asset, err := c.deps.Pimps.RandomOwned(ctx, req.SenderID)
	if err != nil {
		return ownedError(err)
	}
	return c.sendAsset(req.ChatID, asset)
}

func (c *DiscordChannel) cmdSomePimps(ctx context.Context, req commands.Request) error {
	n := collageCount(req.Args.Positional)
	assets, err := c.deps.Pimps.RandomSetFromCollection(ctx, n)
	if err != nil {
		return err
	}
	return c.postCollage(ctx, req.ChatID, fmt.Sprintf("🎲 %d random %s", len(assets), c.deps.Collection.Name), assets)
}

func (c *DiscordChannel) cmdMyPimps(ctx context.Context, req commands.Request) error {
	n := collageCount(req.Args.Positional)
	assets, err := c.deps.Pimps.RandomOwnedSet(ctx, req.SenderID, n)
	if err != nil {
		return ownedError(err)
	}
	return c.postCollage(ctx, req.ChatID, fmt.Sprintf("💼 %s's pimps", req.SenderName), assets)
}

func (c *DiscordChannel) postCollage(ctx context.Context, channelID, title string, assets []moralis.Asset) error {
	urls := make([]string, 0, len(assets))
	for _, a := range assets {
		urls = append(urls, a.ImageURL)
	}

	png, err := collage.Compose(ctx, urls, collage.Options{})
	if err != nil {
		return err
	}

	if err := c.sendCollage(channelID, title, png); err != nil {
		return errorx.Wrap(errorx.Upstream, err, "🚫 Couldn't post the collage.")
	}
	return nil
}

func (c *DiscordChannel) cmdTestWelcome(ctx context.Context, req commands.Request) error {
	guild := c.lookupGuild(req.Metadata["guild_id"])
	if guild == nil {
		return errorx.New(errorx.Upstream, "🚫 Couldn't load the server details.")
	}

	card := greeting.Welcome(greeting.WelcomeInput{
		Username:    req.SenderName,
		UserID:      req.SenderID,
		GuildName:   guild.Name,
		MemberCount: guild.MemberCount,
		AvatarURL:   req.Metadata["avatar_url"],
		VerifyLink:  c.cfg.VerifyLink,
		LevelsLink:  c.cfg.LevelsLink,
	})

	return c.sendCard(req.ChatID, card)
}

func (c *DiscordChannel) cmdTestRole(ctx context.Context, req commands.Request) error {
	roleName := c.cfg.AnnouncerRole
	if len(req.Args.Positional) > 0 {
		roleName = req.Args.Title
	}

	card := greeting.RoleGrant(greeting.RoleGrantInput{
		UserMention: "<@" + req.SenderID + ">",
		RoleName:    roleName,
		AvatarURL:   req.Metadata["avatar_url"],
	})

	return c.sendCard(req.ChatID, card)
}

func (c *DiscordChannel) cmdHelp(ctx context.Context, req commands.Request) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🕶️ MuscleRHB Commands",
		Description: commands.FormatHelpMessage(c.commandDefinitions()),
		Color:       greeting.RandomAccentColor(),
	}
	_, err := c.session.ChannelMessageSendEmbed(req.ChatID, embed)
	return err
}

// announcementMessage renders the announcement embed: megaphone title,
// announcer avatar as thumbnail and footer icon, optional attached image.
func announcementMessage(req commands.Request, ann *announce.Announcement) *discordgo.MessageSend {
	avatar := req.Metadata["avatar_url"]
	embed := &discordgo.MessageEmbed{
		Title:       "📣 " + ann.Title,
		Description: ann.Body,
		Color:       greeting.RandomAccentColor(),
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Announced by " + req.SenderName,
			IconURL: avatar,
		},
	}
	if avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}

	msg := &discordgo.MessageSend{
		Content: ann.Mention,
		Embeds:  []*discordgo.MessageEmbed{embed},
	}
	if ann.Image != nil {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + ann.Image.Name}
		msg.Files = []*discordgo.File{{
			Name:   ann.Image.Name,
			Reader: bytes.NewReader(ann.Image.Data),
		}}
	}
	return msg
}

// ownedError swaps the generic empty-page message for the owned-scope one.
func ownedError(err error) error {
	if errorx.CodeOf(err) == errorx.NoAssets {
		return errNoOwnedAssets
	}
	return err
}

// collageCount reads an optional tile count, clamped to a sane grid.
func collageCount(positional []string) int {
	if len(positional) == 0 {
		return defaultCollageCount
	}
	n, err := strconv.Atoi(positional[0])
	if err != nil || n < 2 {
		return defaultCollageCount
	}
	if n > maxCollageCount {
		return maxCollageCount
	}
	return n
}
