package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lacajita-admin/internal/notifier"
	"lacajita-admin/internal/repository"
	"lacajita-admin/internal/repository/model"
)

type contentHandler struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	notif  notifier.Notifier
}

func newContentHandler(logger *zap.SugaredLogger, repo repository.Repository, notif notifier.Notifier) *contentHandler {
	return &contentHandler{
		logger: logger,
		repo:   repo,
		notif:  notif,
	}
}

func (h *contentHandler) register(r *gin.RouterGroup) {
	r.GET("/home", h.getHome)

	playlists := r.Group("/playlists")
	playlists.GET("", h.listPlaylists)
	playlists.POST("", h.createPlaylist)
	playlists.GET("/:playlistId", h.getPlaylist)
	playlists.PUT("/:playlistId", h.updatePlaylist)
	playlists.DELETE("/:playlistId", h.deletePlaylist)
	playlists.GET("/:playlistId/seasons", h.listSeasons)

	r.PUT("/seasons", h.upsertSeason)
	r.DELETE("/seasons/:seasonId", h.deleteSeason)
	r.GET("/seasons/:seasonId/videos", h.listVideos)

	r.PUT("/videos", h.upsertVideo)
	r.DELETE("/videos/:videoId", h.deleteVideo)

	r.GET("/segments", h.listSegments)
	r.PUT("/segments", h.upsertSegment)
	r.DELETE("/segments/:segmentId", h.deleteSegment)

	r.GET("/carousel", h.getCarousel)
	r.PUT("/carousel", h.upsertCarouselEntry)
	r.DELETE("/carousel/:entryId", h.deleteCarouselEntry)

	r.POST("/analytics/video-event", h.trackVideoEvent)
}

func (h *contentHandler) notifyContent(c *gin.Context, kind string, id string, changeType notifier.ChangeType) {
	if err := h.notif.ContentUpdate(c.Request.Context(), kind, id, changeType); err != nil {
		h.logger.Errorw("failed to notify content update", "kind", kind, "id", id, "error", err)
	}
}

func (h *contentHandler) getHome(c *gin.Context) {
	home, err := h.repo.GetCompleteData(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *contentHandler) listPlaylists(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	activeParam := c.Query("active")
	if query == "" && activeParam == "" {
		playlists, err := h.repo.GetPlaylists(ctx)
		if err != nil {
			respondRepoError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, playlists)
		return
	}

	var active *bool
	if activeParam != "" {
		v, err := strconv.ParseBool(activeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active must be a boolean"})
			return
		}
		active = &v
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	playlists, err := h.repo.SearchPlaylists(ctx, query, active, limit)
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlists)
}

func (h *contentHandler) getPlaylist(c *gin.Context) {
	playlist, err := h.repo.GetPlaylist(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (h *contentHandler) createPlaylist(c *gin.Context) {
	var playlist model.Playlist
	if err := c.ShouldBindJSON(&playlist); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if playlist.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}
	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	if err := h.repo.CreatePlaylist(c.Request.Context(), &playlist); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "playlist", playlist.ID, notifier.ChangeTypeCreate)
	c.JSON(http.StatusCreated, playlist)
}

func (h *contentHandler) updatePlaylist(c *gin.Context) {
	var playlist model.Playlist
	if err := c.ShouldBindJSON(&playlist); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	playlist.ID = c.Param("playlistId")
	playlist.UpdatedAt = time.Now()

	if err := h.repo.UpdatePlaylist(c.Request.Context(), &playlist); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "playlist", playlist.ID, notifier.ChangeTypeModify)
	c.JSON(http.StatusOK, playlist)
}

func (h *contentHandler) deletePlaylist(c *gin.Context) {
	id := c.Param("playlistId")
	if err := h.repo.DeletePlaylist(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "playlist", id, notifier.ChangeTypeDelete)
	c.Status(http.StatusNoContent)
}

func (h *contentHandler) listSeasons(c *gin.Context) {
	seasons, err := h.repo.GetSeasonsByPlaylist(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, seasons)
}

func (h *contentHandler) upsertSeason(c *gin.Context) {
	var season model.Season
	if err := c.ShouldBindJSON(&season); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if season.PlaylistID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playlist_id is required"})
		return
	}
	if season.ID == "" {
		season.ID = uuid.New().String()
		season.CreatedAt = time.Now()
	}
	season.UpdatedAt = time.Now()

	if err := h.repo.UpsertSeason(c.Request.Context(), &season); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "season", season.ID, notifier.ChangeTypeModify)
	c.JSON(http.StatusOK, season)
}

func (h *contentHandler) deleteSeason(c *gin.Context) {
	id := c.Param("seasonId")
	if err := h.repo.DeleteSeason(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "season", id, notifier.ChangeTypeDelete)
	c.Status(http.StatusNoContent)
}

func (h *contentHandler) listVideos(c *gin.Context) {
	videos, err := h.repo.GetVideosBySeason(c.Request.Context(), c.Param("seasonId"))
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *contentHandler) upsertVideo(c *gin.Context) {
	var video model.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The video id is the player's media id, so it must come from the caller.
	if video.ID == "" || video.SeasonID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and season_id are required"})
		return
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}
	video.UpdatedAt = time.Now()

	if err := h.repo.UpsertVideo(c.Request.Context(), &video); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "video", video.ID, notifier.ChangeTypeModify)
	c.JSON(http.StatusOK, video)
}

func (h *contentHandler) deleteVideo(c *gin.Context) {
	id := c.Param("videoId")
	if err := h.repo.DeleteVideo(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "video", id, notifier.ChangeTypeDelete)
	c.Status(http.StatusNoContent)
}

func (h *contentHandler) listSegments(c *gin.Context) {
	segments, err := h.repo.GetSegments(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, segments)
}

func (h *contentHandler) upsertSegment(c *gin.Context) {
	var segment model.Segment
	if err := c.ShouldBindJSON(&segment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if segment.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if segment.ID == "" {
		segment.ID = uuid.New().String()
	}

	if err := h.repo.UpsertSegment(c.Request.Context(), &segment); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "segment", segment.ID, notifier.ChangeTypeModify)
	c.JSON(http.StatusOK, segment)
}

func (h *contentHandler) deleteSegment(c *gin.Context) {
	id := c.Param("segmentId")
	if err := h.repo.DeleteSegment(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "segment", id, notifier.ChangeTypeDelete)
	c.Status(http.StatusNoContent)
}

func (h *contentHandler) getCarousel(c *gin.Context) {
	entries, err := h.repo.GetCarousel(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *contentHandler) upsertCarouselEntry(c *gin.Context) {
	var entry model.CarouselEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.DateTime.IsZero() {
		entry.DateTime = time.Now()
	}

	if err := h.repo.UpsertCarouselEntry(c.Request.Context(), &entry); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "carousel", entry.ID, notifier.ChangeTypeModify)
	c.JSON(http.StatusOK, entry)
}

func (h *contentHandler) deleteCarouselEntry(c *gin.Context) {
	id := c.Param("entryId")
	if err := h.repo.DeleteCarouselEntry(c.Request.Context(), id); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}

	h.notifyContent(c, "carousel", id, notifier.ChangeTypeDelete)
	c.Status(http.StatusNoContent)
}

func (h *contentHandler) trackVideoEvent(c *gin.Context) {
	var event model.VideoEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if event.MediaID == "" || event.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_id and type are required"})
		return
	}

	// Attribute the event to the authenticated caller, not the payload.
	event.UserID = callerID(c)
	event.Timestamp = time.Now()

	if err := h.repo.InsertVideoEvent(c.Request.Context(), &event); err != nil {
		respondRepoError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
