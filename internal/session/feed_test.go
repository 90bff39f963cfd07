package session

import (
	"testing"
)

func TestSelectFeed(t *testing.T) {
	tests := []struct {
		name      string
		tracks    TrackState
		mockupUrl string
		want      FeedLayout
	}{
		{
			name:      "mockup replaces everything",
			tracks:    TrackState{LocalCamera: true, RemoteCamera: true},
			mockupUrl: "https://cdn.example.com/mockup.png",
			want:      FeedLayout{Primary: FeedMockup, MockupUrl: "https://cdn.example.com/mockup.png"},
		},
		{
			name:   "remote primary with local pip",
			tracks: TrackState{LocalCamera: true, RemoteCamera: true},
			want:   FeedLayout{Primary: FeedRemote, Secondary: FeedLocal},
		},
		{
			name:   "remote alone has no pip",
			tracks: TrackState{RemoteCamera: true},
			want:   FeedLayout{Primary: FeedRemote},
		},
		{
			name:   "local alone fills",
			tracks: TrackState{LocalCamera: true},
			want:   FeedLayout{Primary: FeedLocal, Fill: true},
		},
		{
			name: "nothing is explicit no-signal",
			want: FeedLayout{Primary: FeedNone, NoSignal: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectFeed(tt.tracks, tt.mockupUrl)
			if got != tt.want {
				t.Errorf("SelectFeed() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectFeedMockupWinsOverNoSignal(t *testing.T) {
	got := SelectFeed(TrackState{}, "https://cdn.example.com/m.png")
	if got.NoSignal {
		t.Error("mockup layout must not flag no-signal")
	}
	if got.Primary != FeedMockup {
		t.Errorf("Primary = %s, want %s", got.Primary, FeedMockup)
	}
}
