// Package previews maps a (platform, format) pair to a mock-up rendering
// variant and projects a snapshot's fields onto it.
package previews

import (
	"github.com/markleedr/campaign-planner-app/internal/proofs/domain"
)

// Variant identifies one preview rendering. Unknown platform/format pairs
// resolve to VariantUnavailable rather than a nil result, so callers always
// have something explicit to present.
type Variant string

const (
	VariantFacebookSingleImage  Variant = "facebook-single-image"
	VariantFacebookStory        Variant = "facebook-story"
	VariantInstagramSingleImage Variant = "instagram-single-image"
	VariantLinkedInSingleImage  Variant = "linkedin-single-image"
	VariantUnavailable          Variant = "unavailable"
)

type comboKey struct {
	platform domain.Platform
	format   domain.Format
}

var variantTable = map[comboKey]Variant{
	{domain.PlatformFacebook, domain.FormatSingleImage}:  VariantFacebookSingleImage,
	{domain.PlatformFacebook, domain.FormatStory}:        VariantFacebookStory,
	{domain.PlatformInstagram, domain.FormatSingleImage}: VariantInstagramSingleImage,
	{domain.PlatformLinkedIn, domain.FormatSingleImage}:  VariantLinkedInSingleImage,
}

// SelectVariant is a fixed lookup; it never fails.
func SelectVariant(platform domain.Platform, format domain.Format) Variant {
	if v, ok := variantTable[comboKey{platform, format}]; ok {
		return v
	}
	return VariantUnavailable
}

// Preview is the rendered mock-up state handed to the client. When Available
// is false, Message carries the placeholder text and the field values are
// empty.
type Preview struct {
	Variant       Variant `json:"variant"`
	Available     bool    `json:"available"`
	Message       string  `json:"message,omitempty"`
	PrimaryText   string  `json:"primaryText,omitempty"`
	Headline      string  `json:"headline,omitempty"`
	Description   string  `json:"description,omitempty"`
	CallToAction  string  `json:"callToAction,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	ClientName    string  `json:"clientName,omitempty"`
	ClientLogoURL string  `json:"clientLogoUrl,omitempty"`
}

const unavailableMessage = "Preview not available for this format yet"

// Defaults shown when a canonical field is absent from the snapshot.
const (
	defaultClientName   = "Your Brand"
	defaultCallToAction = "Learn More"
	defaultHeadline     = "Your Headline Here"
)

// Render extracts the canonical fields by name; unknown snapshot keys stay
// editable but are not part of any current variant.
func Render(v Variant, data domain.AdData) Preview {
	if v == VariantUnavailable {
		return Preview{Variant: v, Available: false, Message: unavailableMessage}
	}

	p := Preview{
		Variant:       v,
		Available:     true,
		PrimaryText:   data.Value(domain.FieldPrimaryText),
		Headline:      data.Value(domain.FieldHeadline),
		Description:   data.Value(domain.FieldDescription),
		CallToAction:  data.Value(domain.FieldCallToAction),
		ImageURL:      data.Value(domain.FieldImageURL),
		ClientName:    data.Value(domain.FieldClientName),
		ClientLogoURL: data.Value(domain.FieldClientLogoURL),
	}
	if p.ClientName == "" {
		p.ClientName = defaultClientName
	}
	if p.CallToAction == "" {
		p.CallToAction = defaultCallToAction
	}
	if p.Headline == "" {
		p.Headline = defaultHeadline
	}
	return p
}
