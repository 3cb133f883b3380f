package convert

import "fmt"

// resolveImage turns an image span into substitute spans per the configured
// mode. ADF media nodes reference uploaded attachments, not URLs, so
// native-syntax cannot be honored for an external image reference; it
// downgrades to the links behavior and records a Warning.
func resolveImage(sp span, cfg Config, warnings *[]Warning) []span {
	switch cfg.ImageMode {
	case ImageStrip:
		if sp.text != "" {
			return []span{{kind: spanText, text: sp.text}}
		}
		return nil

	case ImageNative:
		*warnings = append(*warnings, Warning{
			Type:    WarningImageDowngraded,
			Message: fmt.Sprintf("image %s: ADF media requires an uploaded attachment; emitted a link instead", sp.href),
		})
		fallthrough

	default: // ImageLinks
		label := sp.text
		if label == "" {
			label = sp.href
		}
		return []span{{
			kind:     spanLink,
			href:     sp.href,
			children: []span{{kind: spanText, text: label}},
		}}
	}
}
