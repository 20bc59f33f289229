package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens users can override in their config.
const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Channel chrome
	TokenHeaderBg ColorToken = "channel.header.bg"
	TokenFooterBg ColorToken = "channel.footer.bg"
	TokenEmpty    ColorToken = "channel.empty"
)

// AllTokens returns every themeable token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenBorderHighlight,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenOverlayTitle,
		TokenOverlayBorder,
		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,
		TokenHeaderBg,
		TokenFooterBg,
		TokenEmpty,
	}
}
