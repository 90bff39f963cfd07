package session

// FeedSource identifies what a video surface renders.
type FeedSource string

const (
	FeedNone   FeedSource = "NONE"
	FeedLocal  FeedSource = "LOCAL"
	FeedRemote FeedSource = "REMOTE"
	FeedMockup FeedSource = "MOCKUP"
)

// TrackState is what the media transport reports about available camera
// tracks. The transport itself is external; we only see presence.
type TrackState struct {
	LocalCamera  bool
	RemoteCamera bool
}

// FeedLayout is the resolved composition of the video surface.
type FeedLayout struct {
	Primary   FeedSource
	Secondary FeedSource
	// Fill is true when the primary is the local viewfinder: rendered in
	// cover mode to read as "I am viewing myself", not "content".
	Fill      bool
	NoSignal  bool
	MockupUrl string
}

// SelectFeed resolves the video surface from track presence and mockup
// state:
//  1. an active mockup fully replaces the video surface;
//  2. a remote track is primary, local becomes picture-in-picture only
//     when both exist;
//  3. local alone is primary in fill mode;
//  4. nothing at all is an explicit no-signal, never a blank surface.
func SelectFeed(tracks TrackState, mockupUrl string) FeedLayout {
	if mockupUrl != "" {
		return FeedLayout{Primary: FeedMockup, MockupUrl: mockupUrl}
	}

	if tracks.RemoteCamera {
		layout := FeedLayout{Primary: FeedRemote}
		if tracks.LocalCamera {
			layout.Secondary = FeedLocal
		}
		return layout
	}

	if tracks.LocalCamera {
		return FeedLayout{Primary: FeedLocal, Fill: true}
	}

	return FeedLayout{Primary: FeedNone, NoSignal: true}
}
