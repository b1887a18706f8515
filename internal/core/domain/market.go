package domain

// Video is the metadata for one search hit from the video platform.
// Flat-playlist extraction only yields basic fields; view count and
// duration fall back to "Unknown" when absent.
type Video struct {
	Title       string
	Description string
	ViewCount   string
	Duration    string
}
