package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
)

// ValidationError reports a rejected input field. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

type Platform string

const (
	PlatformFacebook   Platform = "facebook"
	PlatformInstagram  Platform = "instagram"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformYouTube    Platform = "youtube"
	PlatformGooglePMax Platform = "google-performance-max"
)

type Format string

const (
	FormatSingleImage    Format = "single-image"
	FormatStory          Format = "story"
	FormatCarousel       Format = "carousel"
	FormatVideo          Format = "video"
	FormatPerformanceMax Format = "performance-max"
)

type Status string

const (
	StatusDraft            Status = "draft"
	StatusInReview         Status = "in-review"
	StatusApproved         Status = "approved"
	StatusChangesRequested Status = "changes-requested"
)

// formatsByPlatform is the fixed offering per ad channel.
var formatsByPlatform = map[Platform][]Format{
	PlatformFacebook:   {FormatSingleImage, FormatStory, FormatCarousel},
	PlatformInstagram:  {FormatSingleImage, FormatStory, FormatCarousel},
	PlatformLinkedIn:   {FormatSingleImage, FormatCarousel},
	PlatformYouTube:    {FormatVideo},
	PlatformGooglePMax: {FormatPerformanceMax},
}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := formatsByPlatform[p]; !ok {
		return "", Invalid("platform", fmt.Sprintf("unknown platform %q", s))
	}
	return p, nil
}

func ParseFormat(p Platform, s string) (Format, error) {
	f := Format(s)
	for _, known := range formatsByPlatform[p] {
		if f == known {
			return f, nil
		}
	}
	return "", Invalid("ad_format", fmt.Sprintf("format %q is not offered on %s", s, p))
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusDraft, StatusInReview, StatusApproved, StatusChangesRequested:
		return st, nil
	}
	return "", Invalid("status", fmt.Sprintf("unknown status %q", s))
}

// AdProof is one platform/format-specific creative unit within a campaign.
// CurrentVersion always equals the highest committed version number, or 0
// when no version exists yet.
type AdProof struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaign_id"`
	Platform       Platform  `json:"platform"`
	Format         Format    `json:"ad_format"`
	Status         Status    `json:"status"`
	CurrentVersion int       `json:"current_version"`
	ShareToken     string    `json:"share_token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// VersionMeta is a history listing entry (payload omitted).
type VersionMeta struct {
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdProofVersion is one immutable content snapshot. Created once, never
// mutated, never deleted.
type AdProofVersion struct {
	AdProofID     string    `json:"ad_proof_id"`
	VersionNumber int       `json:"version_number"`
	Data          AdData    `json:"ad_data"`
	CreatedAt     time.Time `json:"created_at"`
}
