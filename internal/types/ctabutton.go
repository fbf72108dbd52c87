package types

type CTAButtonStyle string

const (
	CTAPrimary   CTAButtonStyle = "primary"
	CTASecondary CTAButtonStyle = "secondary"
	CTAOutline   CTAButtonStyle = "outline"
)

// CTAButton links out of the page. When PaymentLinkSlug is set the rendered
// href is rewritten to /pay/{slug} and URL is only a fallback.
type CTAButton struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	URL             string         `json:"url"`
	Style           CTAButtonStyle `json:"style,omitempty"`
	Icon            string         `json:"icon,omitempty"`
	PaymentLinkSlug string         `json:"payment_link_slug,omitempty"`
}
