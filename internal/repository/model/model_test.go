package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The TV apps read the home document by key, so the envelope names are a
// wire contract: "homecarousel" for the carousel and "playlist" (singular)
// for a segment's playlists.
func TestHomeDocumentWireFormat(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := HomeDocument{
		Carousel: []CarouselEntry{
			{ID: "car-1", Link: "/live", ImgSrc: "https://cdn.example.com/a.jpg", DateTime: created, Active: true, Order: 1},
		},
		Segments: []SegmentWithData{
			{
				Segment: Segment{ID: "seg-1", Name: "Destacados", Order: 1, Active: true},
				Playlists: []PlaylistWithSeasons{
					{
						Playlist: Playlist{ID: "pl-1", SegmentID: "seg-1", Title: "Peliculas", Active: true, CreatedAt: created, UpdatedAt: created},
						Seasons: []SeasonWithVideos{
							{
								Season: Season{ID: "sea-1", PlaylistID: "pl-1", Title: "Temporada 1", SeasonNumber: 1, Active: true, CreatedAt: created, UpdatedAt: created},
								Videos: []Video{
									{ID: "vid-1", SeasonID: "sea-1", Title: "Episodio 1", EpisodeNumber: 1, Active: true, CreatedAt: created, UpdatedAt: created},
								},
							},
						},
					},
				},
			},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "homecarousel")
	assert.Contains(t, decoded, "segments")

	var segments []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["segments"], &segments))
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "playlist")
	// The inline segment fields sit next to the nested playlists.
	assert.Contains(t, segments[0], "name")
}
