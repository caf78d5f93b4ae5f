package ui

import "charm.land/lipgloss/v2"

// Color palette - Emerald + Cyan theme
var (
	ColorPrimary     = lipgloss.Color("#10B981") // Emerald
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#10B981") // Emerald when focused
	ColorBg          = lipgloss.Color("#111827") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#111827") // Dark text for light backgrounds
	ColorSelf        = lipgloss.Color("#34D399") // Messages you sent
	ColorCounterpart = lipgloss.Color("#22D3EE") // Messages the contact sent
	ColorOnline      = lipgloss.Color("#10B981") // Online presence dot
	ColorUnread      = lipgloss.Color("#10B981") // Unread badge background
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for warnings
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan for info/call status
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for delivery checks
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	FooterFlashStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWarning)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	// SidebarSelectedStyle uses theme's BgSelected color - initialized properly in regenerateStyles()
	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse)).
				Bold(true).
				Padding(0, 1)

	SidebarPreviewStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	SidebarTimeStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	OnlineDotStyle = lipgloss.NewStyle().
			Foreground(ColorOnline)

	OfflineDotStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	UnreadBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextInverse).
				Background(ColorUnread)

	// StatusRingStyle marks avatars that have a story-style status update
	StatusRingStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
)

// Chat styles
var (
	ChatSelfStyle = lipgloss.NewStyle().
			Foreground(ColorSelf).
			Bold(true)

	ChatCounterpartStyle = lipgloss.NewStyle().
				Foreground(ColorCounterpart).
				Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	// ChatSelectedStyle highlights the message under the cursor in select mode
	ChatSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].TextInverse))

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	// DateChipStyle renders the "Today" / "Yesterday" separators
	DateChipStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg)).
			Padding(0, 1)

	// ReplyBarStyle renders the quoted snapshot above a reply
	ReplyBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(ColorSecondary).
			PaddingLeft(1)

	StatusGlyphStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	StarStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	TypingStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	RecordingStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Call overlay styles
var (
	CallBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorInfo).
			Padding(1, 4)

	CallNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	CallStatusStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	CallHintStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Markdown rendering styles (updated by regenerateStyles)
var (
	// Headers
	MarkdownH1Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH1)).
			MarginTop(1)

	MarkdownH2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH2)).
			MarginTop(1)

	MarkdownH3Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownH3))

	MarkdownH4Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextMuted)

	// Inline styles
	MarkdownBoldStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCode)).
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	// Code block
	MarkdownCodeBlockStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownCodeBg))

	// List
	MarkdownListBulletStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	// Blockquote
	MarkdownBlockquoteStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorMuted).
				PaddingLeft(1)

	// Horizontal rule
	MarkdownHRStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Link
	MarkdownLinkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].MarkdownLink)).
				Underline(true)
)
