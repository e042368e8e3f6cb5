package types

import "strings"

// Social network identifiers used by the storefront header and footer.
const (
	NetworkVK       = "vk"
	NetworkTelegram = "telegram"
	NetworkWhatsApp = "whatsapp"
)

// SocialLinks mirrors the /api/social payload.
type SocialLinks struct {
	VK       string `json:"vk_link"`
	Telegram string `json:"telegram_link"`
	WhatsApp string `json:"wp_link"`
}

// Networks maps each configured network to its URL. Empty links are left out.
func (s SocialLinks) Networks() map[string]string {
	out := map[string]string{}
	add := func(name, link string) {
		if trimmed := strings.TrimSpace(link); trimmed != "" {
			out[name] = trimmed
		}
	}
	add(NetworkVK, s.VK)
	add(NetworkTelegram, s.Telegram)
	add(NetworkWhatsApp, s.WhatsApp)
	return out
}

// Normalize trims whitespace from every link.
func (s SocialLinks) Normalize() SocialLinks {
	return SocialLinks{
		VK:       strings.TrimSpace(s.VK),
		Telegram: strings.TrimSpace(s.Telegram),
		WhatsApp: strings.TrimSpace(s.WhatsApp),
	}
}
