package channels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/wrmarte/MuscleRHB/pkg/commands"
	"github.com/wrmarte/MuscleRHB/pkg/config"
	"github.com/wrmarte/MuscleRHB/pkg/errorx"
	"github.com/wrmarte/MuscleRHB/pkg/greeting"
	"github.com/wrmarte/MuscleRHB/pkg/logger"
	"github.com/wrmarte/MuscleRHB/pkg/pimps"
	"github.com/wrmarte/MuscleRHB/pkg/ratelimit"
	"github.com/wrmarte/MuscleRHB/pkg/utils"
	"github.com/wrmarte/MuscleRHB/pkg/wallet"
)

const commandTimeout = 30 * time.Second

// DiscordDeps are the services command handlers run against.
type DiscordDeps struct {
	Directory  *wallet.Directory
	Pimps      *pimps.Service
	Limiter    *ratelimit.Limiter
	Collection config.CollectionConfig
}

type DiscordChannel struct {
	*BaseChannel
	session    *discordgo.Session
	cfg        config.DiscordConfig
	deps       DiscordDeps
	dispatcher commands.Dispatching
	ctx        context.Context
}

func NewDiscordChannel(cfg config.DiscordConfig, deps DiscordDeps) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	c := &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", cfg.AllowFrom),
		session:     session,
		cfg:         cfg,
		deps:        deps,
		ctx:         context.Background(),
	}
	c.dispatcher = commands.NewDispatcher(commands.NewRegistry(c.commandDefinitions()))

	return c, nil
}

func (c *DiscordChannel) getContext() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *DiscordChannel) Start(ctx context.Context) error {
	logger.InfoC("discord", "Starting Discord bot")

	c.ctx = ctx
	c.session.AddHandler(c.onReady)
	c.session.AddHandler(c.handleMessage)
	c.session.AddHandler(c.onGuildMemberAdd)
	c.session.AddHandler(c.onGuildMemberUpdate)
	c.session.AddHandler(c.onInteraction)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	c.setRunning(true)
	return nil
}

func (c *DiscordChannel) Stop(ctx context.Context) error {
	logger.InfoC("discord", "Stopping Discord bot")
	c.setRunning(false)

	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}

	return nil
}

func (c *DiscordChannel) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateWatchStatus(0, "the streets"); err != nil {
		logger.WarnCF("discord", "Failed to set presence", map[string]any{
			"error": err.Error(),
		})
	}

	logger.InfoCF("discord", "Discord bot connected", map[string]any{
		"username": r.User.Username,
		"user_id":  r.User.ID,
	})
}

// handleMessage is the command entry point and error boundary: every
// failing command produces exactly one user-visible reply and the event
// loop keeps running.
func (c *DiscordChannel) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(m.Content), commands.Prefix) {
		return
	}

	if !c.IsAllowed(m.Author.ID) {
		logger.DebugCF("discord", "Message rejected by allowlist", map[string]any{
			"user_id": m.Author.ID,
		})
		return
	}

	if !c.deps.Limiter.Allow(m.Author.ID) {
		logger.DebugCF("discord", "Command dropped by rate limit", map[string]any{
			"user_id": m.Author.ID,
		})
		return
	}

	traceID := uuid.NewString()
	req := commands.Request{
		ChatID:     m.ChannelID,
		SenderID:   m.Author.ID,
		SenderName: m.Author.Username,
		MessageID:  m.ID,
		Text:       m.Content,
		Metadata: map[string]string{
			"guild_id":   m.GuildID,
			"avatar_url": m.Author.AvatarURL("256"),
			"trace_id":   traceID,
		},
		Reply: func(text string) error {
			_, err := s.ChannelMessageSend(m.ChannelID, text)
			return err
		},
	}

	ctx, cancel := context.WithTimeout(c.getContext(), commandTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCF("discord", "Command handler panicked", map[string]any{
				"trace_id": traceID,
				"panic":    fmt.Sprintf("%v", r),
			})
			req.Reply(errorx.UserMessage(nil))
		}
	}()

	res := c.dispatcher.Dispatch(ctx, req)
	if !res.Matched {
		// unrecognized command names are ignored on purpose
		return
	}

	logger.DebugCF("discord", "Command dispatched", map[string]any{
		"trace_id": traceID,
		"command":  res.Command,
		"user_id":  m.Author.ID,
		"preview":  utils.Truncate(m.Content, 50),
	})

	if res.Err != nil {
		logger.ErrorCF("discord", "Command failed", map[string]any{
			"trace_id": traceID,
			"command":  res.Command,
			"code":     errorx.CodeOf(res.Err).String(),
			"error":    res.Err.Error(),
		})
		if err := req.Reply(errorx.UserMessage(res.Err)); err != nil {
			logger.WarnCF("discord", "Failed to send error reply", map[string]any{
				"trace_id": traceID,
				"error":    err.Error(),
			})
		}
	}
}

func (c *DiscordChannel) onGuildMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	guild := c.lookupGuild(e.GuildID)
	if guild == nil || guild.SystemChannelID == "" {
		return
	}

	card := greeting.Welcome(greeting.WelcomeInput{
		Username:    e.User.Username,
		UserID:      e.User.ID,
		GuildName:   guild.Name,
		MemberCount: guild.MemberCount,
		AvatarURL:   e.User.AvatarURL("256"),
		VerifyLink:  c.cfg.VerifyLink,
		LevelsLink:  c.cfg.LevelsLink,
	})

	if err := c.sendCard(guild.SystemChannelID, card); err != nil {
		logger.ErrorCF("discord", "Failed to send welcome message", map[string]any{
			"user_id": e.User.ID,
			"error":   err.Error(),
		})
	}
}

func (c *DiscordChannel) onGuildMemberUpdate(s *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	if e.BeforeUpdate == nil {
		return
	}

	guild := c.lookupGuild(e.GuildID)
	if guild == nil || guild.SystemChannelID == "" {
		return
	}

	for _, roleID := range addedRoles(e.BeforeUpdate.Roles, e.Roles) {
		name, ok := c.roleNameByID(guild, roleID)
		if !ok {
			continue
		}

		card := greeting.RoleGrant(greeting.RoleGrantInput{
			UserMention: e.User.Mention(),
			RoleName:    name,
			AvatarURL:   e.User.AvatarURL("256"),
		})

		if err := c.sendCard(guild.SystemChannelID, card); err != nil {
			logger.ErrorCF("discord", "Failed to send role announcement", map[string]any{
				"user_id": e.User.ID,
				"role":    name,
				"error":   err.Error(),
			})
		}
	}
}

// onInteraction acknowledges welcome-button clicks.
func (c *DiscordChannel) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	newcomerID, ok := strings.CutPrefix(customID, "welcome_")
	if !ok {
		return
	}

	greeter := "Someone"
	if i.Member != nil && i.Member.User != nil {
		greeter = i.Member.User.Mention()
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("%s says welcome to <@%s>! 👋", greeter, newcomerID),
		},
	})
	if err != nil {
		logger.DebugCF("discord", "Failed to acknowledge welcome button", map[string]any{
			"error": err.Error(),
		})
	}
}

func addedRoles(before, after []string) []string {
	had := make(map[string]bool, len(before))
	for _, id := range before {
		had[id] = true
	}
	var added []string
	for _, id := range after {
		if !had[id] {
			added = append(added, id)
		}
	}
	return added
}

func (c *DiscordChannel) lookupGuild(guildID string) *discordgo.Guild {
	if guild, err := c.session.State.Guild(guildID); err == nil {
		return guild
	}
	guild, err := c.session.Guild(guildID)
	if err != nil {
		logger.WarnCF("discord", "Failed to fetch guild", map[string]any{
			"guild_id": guildID,
			"error":    err.Error(),
		})
		return nil
	}
	return guild
}

func (c *DiscordChannel) roleNameByID(guild *discordgo.Guild, roleID string) (string, bool) {
	for _, role := range guild.Roles {
		if role.ID == roleID {
			return role.Name, true
		}
	}
	return "", false
}

// memberHasRole reports whether the member holds a role with the given
// name, preferring gateway state over a REST round trip.
func (c *DiscordChannel) memberHasRole(guildID, userID, roleName string) (bool, error) {
	guild := c.lookupGuild(guildID)
	if guild == nil {
		return false, fmt.Errorf("guild %s not available", guildID)
	}

	member, err := c.session.State.Member(guildID, userID)
	if err != nil {
		member, err = c.session.GuildMember(guildID, userID)
		if err != nil {
			return false, fmt.Errorf("fetch member: %w", err)
		}
	}

	for _, roleID := range member.Roles {
		if name, ok := c.roleNameByID(guild, roleID); ok && name == roleName {
			return true, nil
		}
	}
	return false, nil
}

// roleResolver maps role names to mentions within one guild.
func (c *DiscordChannel) roleResolver(guildID string) func(name string) (string, bool) {
	return func(name string) (string, bool) {
		guild := c.lookupGuild(guildID)
		if guild == nil {
			return "", false
		}
		for _, role := range guild.Roles {
			if role.Name == name {
				return role.Mention(), true
			}
		}
		return "", false
	}
}

// cleanupTrigger deletes the triggering message. Best-effort: cleanup
// failure never affects the command outcome.
func (c *DiscordChannel) cleanupTrigger(req commands.Request) {
	if req.ChatID == "" || req.MessageID == "" {
		return
	}
	if err := c.session.ChannelMessageDelete(req.ChatID, req.MessageID); err != nil {
		logger.DebugCF("discord", "Failed to delete trigger message", map[string]any{
			"message_id": req.MessageID,
			"error":      err.Error(),
		})
	}
}
