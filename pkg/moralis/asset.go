package moralis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoTraits is rendered when an asset's metadata carries no attribute list.
const NoTraits = "*No traits available.*"

type Trait struct {
	Type        string   `json:"trait_type"`
	Value       any      `json:"value"`
	RarityScore *float64 `json:"rarity_score,omitempty"`
}

// Asset is the normalized read-only view of one indexed NFT.
type Asset struct {
	TokenID  string
	Name     string
	ImageURL string
	Traits   []Trait
	Rank     string
}

// TraitLines renders the trait list as one bullet per trait, or the
// NoTraits sentinel when the metadata had none.
func (a Asset) TraitLines() string {
	if len(a.Traits) == 0 {
		return NoTraits
	}
	lines := make([]string, 0, len(a.Traits))
	for _, t := range a.Traits {
		line := fmt.Sprintf("• **%s**: %v", t.Type, t.Value)
		if t.RarityScore != nil {
			line += fmt.Sprintf(" (Rarity: %.2f)", *t.RarityScore)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

type assetMetadata struct {
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Attributes []Trait         `json:"attributes"`
	Rank       json.RawMessage `json:"rank"`
}

// normalize parses the embedded metadata JSON string. Absent or
// unparseable metadata is treated as an empty object, never an error.
func (c *Client) normalize(raw rawAsset) Asset {
	var meta assetMetadata
	if raw.Metadata != "" {
		// best-effort; a malformed blob degrades to defaults
		_ = json.Unmarshal([]byte(raw.Metadata), &meta)
	}

	asset := Asset{
		TokenID: raw.TokenID,
		Name:    meta.Name,
		Traits:  meta.Attributes,
		Rank:    rankString(meta.Rank),
	}

	image := meta.Image
	if image == "" {
		image = c.opts.PlaceholderImage
	} else if rest, ok := strings.CutPrefix(image, "ipfs://"); ok {
		image = c.opts.IPFSGateway + rest
	}
	asset.ImageURL = image

	return asset
}

// rankString renders a rank that may arrive as a number or a string.
func rankString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "N/A"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	}
	return "N/A"
}
