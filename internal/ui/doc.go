// Package ui provides the user interface components for the NeoChat TUI.
//
// # Overview
//
// The ui package implements the visual components of NeoChat using the Bubble
// Tea framework and Lipgloss styling library. It follows the Model-Update-View
// pattern established by Bubble Tea.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Sidebar       │         Chat Panel                │
//	│   (1/3 width)   │         (2/3 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the open contact's name with a
// presence hint. Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on focus state, message-select mode, recording and calls.
// Transient flash messages temporarily replace the shortcuts.
//
// Sidebar: Lists contacts with presence dots, status rings, unread badges
// and last-message previews. Supports keyboard navigation.
//
// Chat: The main conversation panel showing the rendered thread and input.
// Messages are grouped by sender with date separator chips, reply snapshots,
// delivery glyphs and star markers. AI replies render markdown with
// syntax-highlighted code blocks.
//
// Modal: Popup dialogs built on a discriminated-union ModalState:
// confirmation prompts, profile and login forms (huh), status viewer,
// contact info, image attach, emoji picker and theme picker.
//
// # Focus System
//
// The application has two focus states:
//   - FocusSidebar: Contact list is focused, keyboard controls navigation
//   - FocusChat: Chat panel is focused, keyboard input goes to textarea
//
// Tab key toggles between focus states. The 'q' key only quits when
// the sidebar is focused (to allow typing 'q' in chat).
package ui
