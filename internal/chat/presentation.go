package chat

import "time"

// Presented pairs a message with its display metadata: position within a
// visual group, date-separator visibility and ready-to-render decorations.
type Presented struct {
	Message           Message
	FirstInGroup      bool
	LastInGroup       bool
	ShowDateSeparator bool
	DateLabel         string // set only when ShowDateSeparator
	StatusGlyph       string // set only for self messages
	ReplyPreview      string // set only when the message carries a reply snapshot
}

// ComputePresentation derives display metadata for a thread. It is a pure
// function: no side effects, identical input always yields identical
// output. Stored order is the ordering key; timestamps are consulted only
// for date separators.
//
// now anchors the "Today"/"Yesterday" labels so tests can pin it. The UI
// passes time.Now().
func ComputePresentation(msgs []Message, now time.Time) []Presented {
	out := make([]Presented, len(msgs))
	for i, m := range msgs {
		p := Presented{Message: m}

		p.FirstInGroup = i == 0 || msgs[i-1].SenderID != m.SenderID
		p.LastInGroup = i == len(msgs)-1 || msgs[i+1].SenderID != m.SenderID
		p.ShowDateSeparator = i == 0 || !sameCalendarDay(msgs[i-1].CreatedAt, m.CreatedAt)
		if p.ShowDateSeparator {
			p.DateLabel = DateLabel(m.CreatedAt, now)
		}
		if m.FromSelf() {
			p.StatusGlyph = statusGlyph(m.Status)
		}
		if m.ReplyTo != nil {
			p.ReplyPreview = PreviewText(m.ReplyTo.Kind, m.ReplyTo.Text)
		}

		out[i] = p
	}
	return out
}

// sameCalendarDay compares local date components only, ignoring
// time-of-day.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// DateLabel renders the human label for a date separator: "Today",
// "Yesterday", or a month-day string for older dates.
func DateLabel(t, now time.Time) string {
	switch {
	case sameCalendarDay(t, now):
		return "Today"
	case sameCalendarDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return t.Local().Format("January 2")
	}
}

// statusGlyph maps a delivery status to its check-mark glyph.
func statusGlyph(st Status) string {
	switch st {
	case StatusSent:
		return "✓"
	case StatusDelivered, StatusRead:
		return "✓✓"
	}
	return ""
}
