package chat

import (
	"reflect"
	"testing"
	"time"
)

func msgAt(sender string, t time.Time) Message {
	return Message{ID: sender + t.String(), SenderID: sender, Kind: KindText, CreatedAt: t}
}

func TestComputePresentationGrouping(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	msgs := []Message{
		msgAt("alice", now),
		msgAt("alice", now.Add(time.Minute)),
		msgAt(SelfID, now.Add(2*time.Minute)),
		msgAt("alice", now.Add(3*time.Minute)),
	}

	got := ComputePresentation(msgs, now)

	wantFirst := []bool{true, false, true, true}
	wantLast := []bool{false, true, true, true}
	for i := range got {
		if got[i].FirstInGroup != wantFirst[i] {
			t.Errorf("FirstInGroup[%d] = %v, want %v", i, got[i].FirstInGroup, wantFirst[i])
		}
		if got[i].LastInGroup != wantLast[i] {
			t.Errorf("LastInGroup[%d] = %v, want %v", i, got[i].LastInGroup, wantLast[i])
		}
	}
}

func TestComputePresentationSingleMessageIsSolo(t *testing.T) {
	now := time.Now()
	got := ComputePresentation([]Message{msgAt(SelfID, now)}, now)

	if !got[0].FirstInGroup || !got[0].LastInGroup || !got[0].ShowDateSeparator {
		t.Errorf("solo message flags = %+v, want first+last+separator", got[0])
	}
}

func TestComputePresentationEmpty(t *testing.T) {
	if got := ComputePresentation(nil, time.Now()); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestDateSeparatorOncePerDayBoundary(t *testing.T) {
	d1 := time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local)
	d2 := d1.AddDate(0, 0, 1)
	d3 := d1.AddDate(0, 0, 2)
	now := d3

	// Days [D1,D1,D2,D2,D2,D3]: separators at indices 0, 2, 5 only.
	msgs := []Message{
		msgAt("a", d1), msgAt("a", d1.Add(time.Hour)),
		msgAt("a", d2), msgAt("a", d2.Add(time.Hour)), msgAt("a", d2.Add(2*time.Hour)),
		msgAt("a", d3),
	}

	got := ComputePresentation(msgs, now)

	var sepIdx []int
	for i, p := range got {
		if p.ShowDateSeparator {
			sepIdx = append(sepIdx, i)
		}
	}
	if want := []int{0, 2, 5}; !reflect.DeepEqual(sepIdx, want) {
		t.Errorf("separator indices = %v, want %v", sepIdx, want)
	}
}

func TestDateSeparatorUsesStoredOrderNotTimestamps(t *testing.T) {
	// An async reply can arrive with an older timestamp than a later user
	// message. Stored order stays authoritative.
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	msgs := []Message{
		msgAt(SelfID, now),
		msgAt("alice", now.Add(-time.Hour)), // out of timestamp order, same day
	}

	got := ComputePresentation(msgs, now)
	if got[1].ShowDateSeparator {
		t.Error("same-day out-of-order message must not get a separator")
	}
	if !got[1].FirstInGroup {
		t.Error("sender change must still start a new group")
	}
}

func TestComputePresentationIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	msgs := []Message{
		msgAt("alice", now.AddDate(0, 0, -1)),
		msgAt(SelfID, now),
		msgAt(SelfID, now.Add(time.Minute)),
	}

	first := ComputePresentation(msgs, now)
	second := ComputePresentation(msgs, now)
	if !reflect.DeepEqual(first, second) {
		t.Error("ComputePresentation is not deterministic for identical input")
	}
}

func TestDateLabel(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", time.Date(2026, 3, 14, 0, 5, 0, 0, time.Local), "Today"},
		{"previous day late", time.Date(2026, 3, 13, 23, 59, 0, 0, time.Local), "Yesterday"},
		{"two days back", time.Date(2026, 3, 12, 12, 0, 0, 0, time.Local), "March 12"},
		{"older month", time.Date(2026, 1, 3, 12, 0, 0, 0, time.Local), "January 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateLabel(tt.t, now); got != tt.want {
				t.Errorf("DateLabel(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestStatusGlyphOnlyForSelf(t *testing.T) {
	now := time.Now()
	msgs := []Message{
		{ID: "1", SenderID: SelfID, Kind: KindText, CreatedAt: now, Status: StatusSent},
		{ID: "2", SenderID: SelfID, Kind: KindText, CreatedAt: now, Status: StatusRead},
		{ID: "3", SenderID: "alice", Kind: KindText, CreatedAt: now, Status: StatusRead},
	}

	got := ComputePresentation(msgs, now)
	if got[0].StatusGlyph != "✓" {
		t.Errorf("sent glyph = %q, want ✓", got[0].StatusGlyph)
	}
	if got[1].StatusGlyph != "✓✓" {
		t.Errorf("read glyph = %q, want ✓✓", got[1].StatusGlyph)
	}
	if got[2].StatusGlyph != "" {
		t.Errorf("counterpart glyph = %q, want empty", got[2].StatusGlyph)
	}
}

func TestReplyPreviewDecoration(t *testing.T) {
	now := time.Now()
	msgs := []Message{
		{ID: "1", SenderID: SelfID, Kind: KindText, CreatedAt: now,
			ReplyTo: &ReplyRef{ID: "x", Text: "ignored", SenderName: "Alice", Kind: KindAudio}},
		{ID: "2", SenderID: SelfID, Kind: KindText, CreatedAt: now,
			ReplyTo: &ReplyRef{ID: "y", Text: "quoted words", SenderName: "Alice", Kind: KindText}},
	}

	got := ComputePresentation(msgs, now)
	if got[0].ReplyPreview != "🎵 Audio" {
		t.Errorf("audio reply preview = %q, want glyph", got[0].ReplyPreview)
	}
	if got[1].ReplyPreview != "quoted words" {
		t.Errorf("text reply preview = %q", got[1].ReplyPreview)
	}
}
