package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"lacajita-admin/internal/config"
	"lacajita-admin/internal/repository/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const databaseName = "lacajita-admin"

var (
	NotFoundError = errors.New("document not found")
)

type mongoRepository struct {
	logger   *zap.SugaredLogger
	database *mongo.Database

	playlistCollection *mongo.Collection
	seasonCollection   *mongo.Collection
	videoCollection    *mongo.Collection
	segmentCollection  *mongo.Collection
	carouselCollection *mongo.Collection
	profileCollection  *mongo.Collection
	eventCollection    *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down mongodb connection")
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from mongodb", "error", err)
		}
	}()

	database := client.Database(databaseName)
	repo := &mongoRepository{
		logger:             logger,
		database:           database,
		playlistCollection: database.Collection("playlists"),
		seasonCollection:   database.Collection("seasons"),
		videoCollection:    database.Collection("videos"),
		segmentCollection:  database.Collection("segments"),
		carouselCollection: database.Collection("carousel"),
		profileCollection:  database.Collection("profiles"),
		eventCollection:    database.Collection("videoEvents"),
	}
	repo.createIndexes(ctx)

	return repo, nil
}

func (m *mongoRepository) createIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []struct {
		collection *mongo.Collection
		model      mongo.IndexModel
	}{
		{m.profileCollection, mongo.IndexModel{Keys: bson.D{{Key: "emailPrefix", Value: 1}}}},
		{m.seasonCollection, mongo.IndexModel{Keys: bson.D{{Key: "playlistId", Value: 1}}}},
		{m.videoCollection, mongo.IndexModel{Keys: bson.D{{Key: "seasonId", Value: 1}}}},
		{m.eventCollection, mongo.IndexModel{Keys: bson.D{{Key: "timestamp", Value: 1}}}},
		{m.eventCollection, mongo.IndexModel{Keys: bson.D{{Key: "mediaId", Value: 1}}}},
	}

	for _, idx := range indexes {
		if _, err := idx.collection.Indexes().CreateOne(ctx, idx.model); err != nil {
			m.logger.Warnw("failed to create index", "collection", idx.collection.Name(), "error", err)
		}
	}
}

func (m *mongoRepository) GetPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.playlistCollection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var result []*model.Playlist
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) GetPlaylist(ctx context.Context, playlistID string) (*model.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.Playlist
	err := m.playlistCollection.FindOne(ctx, bson.M{"_id": playlistID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFoundError
		}
		return nil, err
	}

	return &result, nil
}

func (m *mongoRepository) SearchPlaylists(ctx context.Context, query string, active *bool, limit int64) ([]*model.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		pattern := bson.M{"$regex": query, "$options": "i"}
		filter["$or"] = bson.A{bson.M{"title": pattern}, bson.M{"description": pattern}, bson.M{"category": pattern}}
	}
	if active != nil {
		filter["active"] = *active
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.playlistCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var result []*model.Playlist
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.playlistCollection.InsertOne(ctx, playlist)
	return err
}

func (m *mongoRepository) UpdatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result := m.playlistCollection.FindOneAndReplace(ctx, bson.M{"_id": playlist.ID}, playlist)
	if errors.Is(result.Err(), mongo.ErrNoDocuments) {
		return NotFoundError
	}
	return result.Err()
}

func (m *mongoRepository) DeletePlaylist(ctx context.Context, playlistID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.playlistCollection.DeleteOne(ctx, bson.M{"_id": playlistID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

func (m *mongoRepository) GetSeasonsByPlaylist(ctx context.Context, playlistID string) ([]*model.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seasonNumber", Value: 1}})
	cursor, err := m.seasonCollection.Find(ctx, bson.M{"playlistId": playlistID}, opts)
	if err != nil {
		return nil, err
	}

	var result []*model.Season
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) UpsertSeason(ctx context.Context, season *model.Season) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.seasonCollection.ReplaceOne(ctx, bson.M{"_id": season.ID}, season, opts)
	return err
}

func (m *mongoRepository) DeleteSeason(ctx context.Context, seasonID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.seasonCollection.DeleteOne(ctx, bson.M{"_id": seasonID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

func (m *mongoRepository) GetVideosBySeason(ctx context.Context, seasonID string) ([]*model.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "episodeNumber", Value: 1}})
	cursor, err := m.videoCollection.Find(ctx, bson.M{"seasonId": seasonID}, opts)
	if err != nil {
		return nil, err
	}

	var result []*model.Video
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) UpsertVideo(ctx context.Context, video *model.Video) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.videoCollection.ReplaceOne(ctx, bson.M{"_id": video.ID}, video, opts)
	return err
}

func (m *mongoRepository) DeleteVideo(ctx context.Context, videoID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.videoCollection.DeleteOne(ctx, bson.M{"_id": videoID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

func (m *mongoRepository) GetSegments(ctx context.Context) ([]*model.Segment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := m.segmentCollection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var result []*model.Segment
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) UpsertSegment(ctx context.Context, segment *model.Segment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.segmentCollection.ReplaceOne(ctx, bson.M{"_id": segment.ID}, segment, opts)
	return err
}

func (m *mongoRepository) DeleteSegment(ctx context.Context, segmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.segmentCollection.DeleteOne(ctx, bson.M{"_id": segmentID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

func (m *mongoRepository) GetCarousel(ctx context.Context) ([]*model.CarouselEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := m.carouselCollection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var result []*model.CarouselEntry
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) UpsertCarouselEntry(ctx context.Context, entry *model.CarouselEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.carouselCollection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, opts)
	return err
}

func (m *mongoRepository) DeleteCarouselEntry(ctx context.Context, entryID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.carouselCollection.DeleteOne(ctx, bson.M{"_id": entryID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

// GetCompleteData assembles the home document: active carousel entries plus
// every active segment with its playlists, seasons and videos nested. Reads
// whole collections and joins in memory, which is fine at catalog sizes.
func (m *mongoRepository) GetCompleteData(ctx context.Context) (*model.HomeDocument, error) {
	carousel, err := m.GetCarousel(ctx)
	if err != nil {
		return nil, err
	}
	segments, err := m.GetSegments(ctx)
	if err != nil {
		return nil, err
	}
	playlists, err := m.GetPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	doc := &model.HomeDocument{
		Carousel: make([]model.CarouselEntry, 0, len(carousel)),
		Segments: make([]model.SegmentWithData, 0, len(segments)),
	}
	for _, entry := range carousel {
		if entry.Active {
			doc.Carousel = append(doc.Carousel, *entry)
		}
	}

	bySegment := make(map[string][]*model.Playlist)
	for _, playlist := range playlists {
		bySegment[playlist.SegmentID] = append(bySegment[playlist.SegmentID], playlist)
	}

	for _, segment := range segments {
		if !segment.Active {
			continue
		}

		withData := model.SegmentWithData{Segment: *segment, Playlists: make([]model.PlaylistWithSeasons, 0)}
		for _, playlist := range bySegment[segment.ID] {
			nested, err := m.playlistWithSeasons(ctx, playlist)
			if err != nil {
				return nil, err
			}
			withData.Playlists = append(withData.Playlists, *nested)
		}
		doc.Segments = append(doc.Segments, withData)
	}

	return doc, nil
}

func (m *mongoRepository) playlistWithSeasons(ctx context.Context, playlist *model.Playlist) (*model.PlaylistWithSeasons, error) {
	seasons, err := m.GetSeasonsByPlaylist(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}

	nested := &model.PlaylistWithSeasons{Playlist: *playlist, Seasons: make([]model.SeasonWithVideos, 0, len(seasons))}
	for _, season := range seasons {
		videos, err := m.GetVideosBySeason(ctx, season.ID)
		if err != nil {
			return nil, err
		}

		withVideos := model.SeasonWithVideos{Season: *season, Videos: make([]model.Video, 0, len(videos))}
		for _, video := range videos {
			withVideos.Videos = append(withVideos.Videos, *video)
		}
		nested.Seasons = append(nested.Seasons, withVideos)
	}

	return nested, nil
}

func (m *mongoRepository) CountContent(ctx context.Context) (*model.ContentCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	playlists, err := m.playlistCollection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	videos, err := m.videoCollection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	seasons, err := m.seasonCollection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	return &model.ContentCounts{Playlists: playlists, Videos: videos, Seasons: seasons}, nil
}

func (m *mongoRepository) SaveProfile(ctx context.Context, profile *model.LocalProfile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := m.profileCollection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	return err
}

func (m *mongoRepository) GetProfile(ctx context.Context, profileID string) (*model.LocalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.LocalProfile
	err := m.profileCollection.FindOne(ctx, bson.M{"_id": profileID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFoundError
		}
		return nil, err
	}
	return &result, nil
}

func (m *mongoRepository) GetProfileByEmailPrefix(ctx context.Context, emailPrefix string) (*model.LocalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result model.LocalProfile
	err := m.profileCollection.FindOne(ctx, bson.M{"emailPrefix": emailPrefix}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFoundError
		}
		return nil, err
	}
	return &result, nil
}

func (m *mongoRepository) GetAllProfiles(ctx context.Context) ([]*model.LocalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.profileCollection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var result []*model.LocalProfile
	err = cursor.All(ctx, &result)
	return result, err
}

func (m *mongoRepository) DeleteProfile(ctx context.Context, profileID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.profileCollection.DeleteOne(ctx, bson.M{"_id": profileID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return NotFoundError
	}
	return nil
}

func (m *mongoRepository) InsertVideoEvent(ctx context.Context, event *model.VideoEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := m.eventCollection.InsertOne(ctx, event)
	return err
}

func (m *mongoRepository) GetVideoConsumption(ctx context.Context, since time.Time) (*model.VideoConsumptionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	match := bson.M{"timestamp": bson.M{"$gte": since}}

	stats := &model.VideoConsumptionStats{
		TopVideos: make([]model.TopVideo, 0),
		Last7Days: make([]model.DailyVideoEvents, 0),
	}

	var err error
	if stats.TotalEvents, err = m.eventCollection.CountDocuments(ctx, match); err != nil {
		return nil, err
	}
	if stats.Plays, err = m.eventCollection.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}, "type": model.VideoEventPlay}); err != nil {
		return nil, err
	}
	if stats.Completes, err = m.eventCollection.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}, "type": model.VideoEventComplete}); err != nil {
		return nil, err
	}

	users, err := m.eventCollection.Distinct(ctx, "userId", match)
	if err != nil {
		return nil, err
	}
	stats.UniqueUsers = int64(len(users))

	secondsCursor, err := m.eventCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "seconds": bson.M{"$sum": "$secondsSeen"}}}},
	})
	if err != nil {
		return nil, err
	}
	var secondsRows []struct {
		Seconds int64 `bson:"seconds"`
	}
	if err := secondsCursor.All(ctx, &secondsRows); err != nil {
		return nil, err
	}
	if len(secondsRows) > 0 {
		stats.SecondsViewed = secondsRows[0].Seconds
	}

	topCursor, err := m.eventCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$mediaId",
			"events":    bson.M{"$sum": 1},
			"plays":     bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", model.VideoEventPlay}}, 1, 0}}},
			"completes": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", model.VideoEventComplete}}, 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "events", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	})
	if err != nil {
		return nil, err
	}
	if err := topCursor.All(ctx, &stats.TopVideos); err != nil {
		return nil, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	dailyCursor, err := m.eventCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": weekAgo}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$timestamp"}},
			"events": bson.M{"$sum": 1},
			"plays":  bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$type", model.VideoEventPlay}}, 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	if err := dailyCursor.All(ctx, &stats.Last7Days); err != nil {
		return nil, err
	}

	return stats, nil
}
