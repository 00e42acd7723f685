package repository

import (
	"context"
	"time"

	"lacajita-admin/internal/repository/model"
)

type Repository interface {
	GetPlaylists(ctx context.Context) ([]*model.Playlist, error)
	GetPlaylist(ctx context.Context, playlistID string) (*model.Playlist, error)
	SearchPlaylists(ctx context.Context, query string, active *bool, limit int64) ([]*model.Playlist, error)
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	UpdatePlaylist(ctx context.Context, playlist *model.Playlist) error
	DeletePlaylist(ctx context.Context, playlistID string) error

	GetSeasonsByPlaylist(ctx context.Context, playlistID string) ([]*model.Season, error)
	UpsertSeason(ctx context.Context, season *model.Season) error
	DeleteSeason(ctx context.Context, seasonID string) error

	GetVideosBySeason(ctx context.Context, seasonID string) ([]*model.Video, error)
	UpsertVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, videoID string) error

	GetSegments(ctx context.Context) ([]*model.Segment, error)
	UpsertSegment(ctx context.Context, segment *model.Segment) error
	DeleteSegment(ctx context.Context, segmentID string) error

	GetCarousel(ctx context.Context) ([]*model.CarouselEntry, error)
	UpsertCarouselEntry(ctx context.Context, entry *model.CarouselEntry) error
	DeleteCarouselEntry(ctx context.Context, entryID string) error

	GetCompleteData(ctx context.Context) (*model.HomeDocument, error)
	CountContent(ctx context.Context) (*model.ContentCounts, error)

	SaveProfile(ctx context.Context, profile *model.LocalProfile) error
	GetProfile(ctx context.Context, profileID string) (*model.LocalProfile, error)
	GetProfileByEmailPrefix(ctx context.Context, emailPrefix string) (*model.LocalProfile, error)
	GetAllProfiles(ctx context.Context) ([]*model.LocalProfile, error)
	DeleteProfile(ctx context.Context, profileID string) error

	InsertVideoEvent(ctx context.Context, event *model.VideoEvent) error
	GetVideoConsumption(ctx context.Context, since time.Time) (*model.VideoConsumptionStats, error)
}
