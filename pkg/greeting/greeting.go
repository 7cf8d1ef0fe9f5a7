// Package greeting holds the member-welcome and role-grant message
// templates, kept renderer-agnostic so the same content backs both live
// events and the !testwelcome / !testrole replay commands.
package greeting

import (
	"fmt"
	"math/rand"
)

// accentColors are the rotating embed accent colors.
var accentColors = []int{0xFFD700, 0xFF69B4, 0x8A2BE2, 0x00CED1, 0xDC143C}

const roleGrantColor = 0x9B59B6

// RandomAccentColor returns one of the fixed accent colors.
func RandomAccentColor() int {
	return accentColors[rand.Intn(len(accentColors))]
}

// Card is a renderer-agnostic embed: the gateway layer turns it into the
// platform's native rich message.
type Card struct {
	Title        string
	Description  string
	Color        int
	ThumbnailURL string
	Footer       string
	// ButtonLabel/ButtonID are set when the card carries an action button.
	ButtonLabel string
	ButtonID    string
}

type WelcomeInput struct {
	Username    string
	UserID      string
	GuildName   string
	MemberCount int
	AvatarURL   string
	VerifyLink  string
	LevelsLink  string
}

// Welcome renders the new-member greeting card.
func Welcome(in WelcomeInput) Card {
	desc := fmt.Sprintf(
		"**You made it to %s, boss.** 😎\nKeep it clean, flashy, and classy. 🍸\n\n",
		in.GuildName,
	)
	if in.VerifyLink != "" {
		desc += fmt.Sprintf("🔑 [Verify your role](%s)\n", in.VerifyLink)
	}
	if in.LevelsLink != "" {
		desc += fmt.Sprintf("📊 [Pimp Levels](%s)\n", in.LevelsLink)
	}
	desc += fmt.Sprintf(
		"\nSay hi. Make moves. Claim your throne. 💯\nYou're crew member **#%d**.",
		in.MemberCount,
	)

	return Card{
		Title:        fmt.Sprintf("💎 Welcome, %s! 💎", in.Username),
		Description:  desc,
		Color:        RandomAccentColor(),
		ThumbnailURL: in.AvatarURL,
		Footer:       fmt.Sprintf("Member #%d", in.MemberCount),
		ButtonLabel:  "👋 Welcome",
		ButtonID:     "welcome_" + in.UserID,
	}
}

type RoleGrantInput struct {
	UserMention string
	RoleName    string
	AvatarURL   string
}

// RoleGrant renders the status-unlocked card for a newly granted role.
func RoleGrant(in RoleGrantInput) Card {
	return Card{
		Title: "🚨 New Status Unlocked!",
		Description: fmt.Sprintf(
			"✨ %s leveled up in style with the **%s** role! 👑\n\nShow some love, crew. This one's climbing fast. 🏁",
			in.UserMention, in.RoleName,
		),
		Color:        roleGrantColor,
		ThumbnailURL: in.AvatarURL,
		Footer:       "Role granted: " + in.RoleName,
	}
}
