package announce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
)

func staticRoles(roles map[string]string) RoleResolver {
	return func(name string) (string, bool) {
		mention, ok := roles[name]
		return mention, ok
	}
}

func fetcherOK(data []byte) ImageFetcher {
	return func(_ context.Context, url string) ([]byte, string, error) {
		return data, "pic.png", nil
	}
}

func fetcherFail() ImageFetcher {
	return func(_ context.Context, url string) ([]byte, string, error) {
		return nil, "", errors.New("connection refused")
	}
}

func TestBuildRequiresAnnouncerRole(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	_, err := b.Build(context.Background(), Input{Title: "News", CallerIsAnnouncer: false})
	assert.ErrorIs(t, err, ErrNotAnnouncer)
	assert.Equal(t, errorx.Unauthorized, errorx.CodeOf(err))
}

func TestBuildRequiresTitle(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	_, err := b.Build(context.Background(), Input{CallerIsAnnouncer: true})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestBuildPlainAnnouncement(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	ann, err := b.Build(context.Background(), Input{
		Title:             "Mint is live",
		Body:              "Go go go",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err)
	assert.Empty(t, ann.Mention)
	assert.Equal(t, "Mint is live", ann.Title)
	assert.Equal(t, "Go go go", ann.Body)
	assert.Nil(t, ann.Image)
	assert.Empty(t, ann.Warning)
}

func TestBuildBodyPlaceholder(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	ann, err := b.Build(context.Background(), Input{Title: "Heads up", CallerIsAnnouncer: true})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderBody, ann.Body)
}

func TestBuildTagEveryone(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	ann, err := b.Build(context.Background(), Input{
		Title:             "Big news",
		Tag:               "everyone",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "@everyone", ann.Mention)
}

func TestBuildTagResolvesRole(t *testing.T) {
	b := NewBuilder(staticRoles(map[string]string{"holders": "<@&123>"}), fetcherOK(nil))

	ann, err := b.Build(context.Background(), Input{
		Title:             "Holder perk",
		Tag:               "holders",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "<@&123>", ann.Mention)
}

func TestBuildTagUnknownRole(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	_, err := b.Build(context.Background(), Input{
		Title:             "Holder perk",
		Tag:               "ghosts",
		CallerIsAnnouncer: true,
	})
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestBuildAttachesImage(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK([]byte("png-bytes")))

	ann, err := b.Build(context.Background(), Input{
		Title:             "With pic",
		ImageURL:          "https://cdn.example.com/pic.png",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err)
	require.NotNil(t, ann.Image)
	assert.Equal(t, []byte("png-bytes"), ann.Image.Data)
	assert.Empty(t, ann.Warning)
}

func TestBuildImageFetchFailureDowngrades(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherFail())

	ann, err := b.Build(context.Background(), Input{
		Title:             "With pic",
		ImageURL:          "https://cdn.example.com/pic.png",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err, "image failure must not abort the announcement")
	assert.Nil(t, ann.Image)
	assert.NotEmpty(t, ann.Warning)
	assert.Equal(t, "With pic", ann.Title)
}

func TestBuildNonImageURLDowngrades(t *testing.T) {
	b := NewBuilder(staticRoles(nil), fetcherOK(nil))

	ann, err := b.Build(context.Background(), Input{
		Title:             "With link",
		ImageURL:          "https://example.com/page.html",
		CallerIsAnnouncer: true,
	})
	require.NoError(t, err)
	assert.Nil(t, ann.Image)
	assert.NotEmpty(t, ann.Warning)
}
