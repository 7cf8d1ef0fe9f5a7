// Package announce builds privileged broadcast messages: authorization,
// role-tag resolution and optional image attachment with graceful
// degradation when the image cannot be fetched.
package announce

import (
	"context"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
	"github.com/wrmarte/MuscleRHB/pkg/utils"
)

// PlaceholderBody fills the description when no body text was given.
const PlaceholderBody = "*No additional details provided.*"

// TagEveryone is the reserved tag value that broadcasts to the whole server.
const TagEveryone = "everyone"

var (
	ErrNotAnnouncer = errorx.New(errorx.Unauthorized, "🚫 You need the **Announcer** role to use this command.")
	ErrMissingTitle = errorx.New(errorx.Validation, "❌ Announcement needs a title. Usage: `!announce Title | details`")
	ErrRoleNotFound = errorx.New(errorx.NotFound, "❌ Could not find the specified role to tag.")
)

// RoleResolver maps a role name to its mention string.
type RoleResolver func(name string) (mention string, ok bool)

// ImageFetcher downloads image bytes for attachment.
type ImageFetcher func(ctx context.Context, url string) (data []byte, filename string, err error)

type Input struct {
	Title string
	Body  string
	// Tag is the --tag value: empty for none, TagEveryone for the
	// broadcast-all sentinel, anything else a role name to resolve.
	Tag string
	// ImageURL is the --img value, empty when absent.
	ImageURL string
	// CallerIsAnnouncer is the caller's proof of holding the announcer role.
	CallerIsAnnouncer bool
}

type Image struct {
	Name string
	Data []byte
}

type Announcement struct {
	Mention string
	Title   string
	Body    string
	Image   *Image
	// Warning is a non-fatal note appended to the reply, e.g. when the
	// image was dropped.
	Warning string
}

type Builder struct {
	resolveRole RoleResolver
	fetchImage  ImageFetcher
}

func NewBuilder(resolveRole RoleResolver, fetchImage ImageFetcher) *Builder {
	return &Builder{resolveRole: resolveRole, fetchImage: fetchImage}
}

// Build validates and assembles one announcement. Authorization and tag
// resolution failures abort with no partial output; a failed image fetch
// only downgrades to a text post with a warning.
func (b *Builder) Build(ctx context.Context, in Input) (*Announcement, error) {
	if !in.CallerIsAnnouncer {
		return nil, ErrNotAnnouncer
	}
	if in.Title == "" {
		return nil, ErrMissingTitle
	}

	ann := &Announcement{
		Title: in.Title,
		Body:  in.Body,
	}
	if ann.Body == "" {
		ann.Body = PlaceholderBody
	}

	switch in.Tag {
	case "":
	case TagEveryone:
		ann.Mention = "@everyone"
	default:
		mention, ok := b.resolveRole(in.Tag)
		if !ok {
			return nil, ErrRoleNotFound
		}
		ann.Mention = mention
	}

	if in.ImageURL != "" {
		b.attachImage(ctx, in.ImageURL, ann)
	}

	return ann, nil
}

func (b *Builder) attachImage(ctx context.Context, url string, ann *Announcement) {
	if !utils.IsImageURL(url) {
		ann.Warning = "⚠️ Skipped `--img`: not a direct image link."
		return
	}

	data, name, err := b.fetchImage(ctx, url)
	if err != nil {
		ann.Warning = "⚠️ Couldn't fetch the image, posting without it."
		return
	}

	ann.Image = &Image{Name: name, Data: data}
}
