package model

import (
	"time"
)

// Playlist groups seasons of related content inside a segment.
type Playlist struct {
	ID               string    `bson:"_id" json:"id"`
	SegmentID        string    `bson:"segmentId" json:"segment_id"`
	Title            string    `bson:"title" json:"title"`
	Description      string    `bson:"description" json:"description"`
	Category         string    `bson:"category" json:"category"`
	Subscription     bool      `bson:"subscription" json:"subscription"`
	SubscriptionCost float64   `bson:"subscriptionCost" json:"subscription_cost"`
	Active           bool      `bson:"active" json:"active"`
	CreatedAt        time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updated_at"`
}

type Season struct {
	ID           string    `bson:"_id" json:"id"`
	PlaylistID   string    `bson:"playlistId" json:"playlist_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description,omitempty"`
	SeasonNumber int       `bson:"seasonNumber" json:"season_number"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}

// Video is a single episode. The id doubles as the player's media id.
type Video struct {
	ID            string    `bson:"_id" json:"id"`
	SeasonID      string    `bson:"seasonId" json:"season_id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description,omitempty"`
	DurationSecs  int       `bson:"durationSecs" json:"duration,omitempty"`
	EpisodeNumber int       `bson:"episodeNumber" json:"episode_number"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updated_at"`
}

// Segment is a top-level row of the home screen.
type Segment struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	LiveTV bool   `bson:"livetv" json:"livetv"`
	Order  int    `bson:"order" json:"order"`
	Active bool   `bson:"active" json:"active"`
}

type CarouselEntry struct {
	ID       string    `bson:"_id" json:"id"`
	Link     string    `bson:"link" json:"link"`
	ImgSrc   string    `bson:"imgsrc" json:"imgsrc"`
	Video    string    `bson:"video" json:"video"`
	DateTime time.Time `bson:"dateTime" json:"date_time"`
	Active   bool      `bson:"active" json:"active"`
	Order    int       `bson:"order" json:"order"`
}

// SeasonWithVideos and friends are the nested read models the admin panel
// renders as the home document.
type SeasonWithVideos struct {
	Season `bson:",inline"`
	Videos []Video `bson:"videos" json:"videos"`
}

type PlaylistWithSeasons struct {
	Playlist `bson:",inline"`
	Seasons  []SeasonWithVideos `bson:"seasons" json:"seasons"`
}

type SegmentWithData struct {
	Segment   `bson:",inline"`
	Playlists []PlaylistWithSeasons `bson:"playlists" json:"playlist"`
}

type HomeDocument struct {
	Carousel []CarouselEntry   `json:"homecarousel"`
	Segments []SegmentWithData `json:"segments"`
}

// LocalProfile is the legacy hybrid-signup profile cache: a handful of fields
// keyed by a generated local id, with the email prefix as a secondary lookup.
type LocalProfile struct {
	ID          string    `bson:"_id" json:"id"`
	FirstName   string    `bson:"firstName" json:"firstName"`
	LastName    string    `bson:"lastName" json:"lastName"`
	EmailPrefix string    `bson:"emailPrefix" json:"emailPrefix"`
	Phone       string    `bson:"phone" json:"phone,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VideoEvent is one playback event reported by the player.
type VideoEvent struct {
	MediaID     string    `bson:"mediaId" json:"media_id"`
	UserID      string    `bson:"userId" json:"user_id"`
	Type        string    `bson:"type" json:"type"`
	SecondsSeen int       `bson:"secondsSeen" json:"seconds_seen"`
	Country     string    `bson:"country" json:"country,omitempty"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

const (
	VideoEventPlay     = "play"
	VideoEventComplete = "complete"
)

// TopVideo is one row of the most-played ranking.
type TopVideo struct {
	MediaID   string `bson:"_id" json:"media_id"`
	Plays     int64  `bson:"plays" json:"plays"`
	Completes int64  `bson:"completes" json:"completes"`
	Events    int64  `bson:"events" json:"events"`
}

// DailyVideoEvents is one day's bucket of playback activity.
type DailyVideoEvents struct {
	Date   string `bson:"_id" json:"d"`
	Events int64  `bson:"events" json:"events"`
	Plays  int64  `bson:"plays" json:"plays"`
}

// VideoConsumptionStats is the aggregate the analytics dashboard renders.
type VideoConsumptionStats struct {
	TotalEvents   int64              `json:"total_events"`
	Plays         int64              `json:"plays"`
	Completes     int64              `json:"completes"`
	UniqueUsers   int64              `json:"unique_users"`
	SecondsViewed int64              `json:"total_seconds_watched_estimate"`
	TopVideos     []TopVideo         `json:"top_videos"`
	Last7Days     []DailyVideoEvents `json:"last_7d"`
}

// ContentCounts feeds the system summary widget.
type ContentCounts struct {
	Playlists int64 `json:"playlists"`
	Videos    int64 `json:"videos"`
	Seasons   int64 `json:"seasons"`
}
