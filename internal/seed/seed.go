// Package seed loads a demo data set: users, one channel each, videos across
// categories with preset counters, and a few comments.
package seed

import (
	"context"
	"fmt"
	"time"
	"youclone/internal/domain"
	"youclone/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

const sampleMediaBase = "https://storage.googleapis.com/gtv-videos-bucket/sample/"

type userSeed struct {
	username, email, avatar string
}

type channelSeed struct {
	name, description, banner string
	subscribers               int64
}

type videoSeed struct {
	videoID, title, category, media, description string
	owner                                        int // index into users and channels
	views, likes, dislikes                       int64
	uploaded                                     string
}

type commentSeed struct {
	video  int
	author int
	text   string
}

var users = []userSeed{
	{"JohnDoe", "john@example.com", "https://i.pravatar.cc/150?u=john"},
	{"ChaiAurCode", "chai@example.com", "https://i.pravatar.cc/150?u=chai"},
	{"JSMastery", "js@example.com", "https://i.pravatar.cc/150?u=js"},
	{"AlgoDaily", "algo@example.com", "https://i.pravatar.cc/150?u=algo"},
	{"MusicBox", "music@example.com", "https://i.pravatar.cc/150?u=music"},
	{"LiveDev", "live@example.com", "https://i.pravatar.cc/150?u=live"},
}

var channels = []channelSeed{
	{"Code with John", "Coding tutorials and tech reviews", "https://picsum.photos/seed/banner1/1200/300", 5200},
	{"Chai aur Code", "Small, practical coding lessons", "https://picsum.photos/seed/banner2/1200/300", 8400},
	{"JS Mastery", "JavaScript tips and deep dives", "https://picsum.photos/seed/banner3/1200/300", 10200},
	{"AlgoDaily", "Data structures and algorithms", "https://picsum.photos/seed/banner4/1200/300", 7600},
	{"MusicBox", "Playlists and mixes", "https://picsum.photos/seed/banner5/1200/300", 54000},
	{"Live Dev", "Live coding sessions and projects", "https://picsum.photos/seed/banner6/1200/300", 12000},
}

var videos = []videoSeed{
	{"video01", "React Roadmap | Beginner to Advanced", "Web Development", "BigBuckBunny.mp4", "A complete roadmap for learning React.", 0, 125000, 4500, 120, "2024-12-01"},
	{"video02", "Full Stack Course | Database to UI", "Web Development", "ElephantsDream.mp4", "A free full stack course for beginners.", 0, 240000, 12000, 200, "2024-08-21"},
	{"video03", "JavaScript Crash Course for Beginners", "JavaScript", "Sintel.mp4", "The basics of JavaScript in one hour.", 2, 900000, 30000, 900, "2024-01-10"},
	{"video04", "Async JS Explained", "JavaScript", "TearsOfSteel.mp4", "Callbacks, promises and async/await.", 2, 540000, 15000, 300, "2024-03-14"},
	{"video05", "Data Structures Full Course", "Data Structures", "WeAreGoingOnBullrun.mp4", "Arrays to graphs in three hours.", 3, 780000, 25000, 600, "2024-05-19"},
	{"video06", "Binary Search Explained with Examples", "Data Structures", "ForBiggerBlazes.mp4", "Binary search step by step.", 3, 230000, 6800, 140, "2024-04-10"},
	{"video07", "Server Crash Course", "Server", "ForBiggerEscapes.mp4", "Build an HTTP server from scratch.", 1, 390000, 11000, 250, "2024-02-02"},
	{"video08", "REST APIs for Beginners", "Server", "ForBiggerFun.mp4", "Routing, handlers and middleware.", 1, 410000, 17000, 90, "2024-07-05"},
	{"video09", "Lofi Beats to Code and Study", "Music", "ForBiggerJoyrides.mp4", "Two hours of calm beats.", 4, 12000000, 450000, 3000, "2023-11-05"},
	{"video10", "Chill Vibes Playlist", "Music", "ForBiggerMeltdowns.mp4", "A relaxed playlist for the evening.", 4, 8000000, 230000, 1500, "2024-06-22"},
	{"video11", "Open World Trailer Breakdown", "Gaming", "SubaruOutbackOnStreetAndDirt.mp4", "Every detail of the new trailer.", 5, 9100000, 350000, 6000, "2024-02-28"},
	{"video12", "Live Coding: Build a Video Site", "Live", "VolkswagenGTIReview.mp4", "Building a video platform live.", 5, 88000, 3500, 40, "2024-06-20"},
}

var comments = []commentSeed{
	{0, 1, "Great roadmap, thanks!"},
	{0, 2, "Very helpful for beginners."},
	{2, 0, "Clear and concise explanation."},
	{8, 3, "On repeat while coding."},
	{10, 4, "Can't wait for the release."},
}

// Summary reports what Run inserted.
type Summary struct {
	Users    int
	Channels int
	Videos   int
	Comments int
}

// Run inserts the demo data set. It does not clear existing data; callers
// start from an empty store.
func Run(ctx context.Context, repos repository.Repositories, log logrus.FieldLogger) (*Summary, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	// 1. Users
	userIDs := make([]primitive.ObjectID, len(users))
	for i, u := range users {
		id, err := repos.Users.Create(ctx, &domain.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hashed),
			AvatarURL:    u.avatar,
		})
		if err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.username, err)
		}
		userIDs[i] = id
	}

	// 2. One channel per user
	channelIDs := make([]primitive.ObjectID, len(channels))
	for i, ch := range channels {
		id, err := repos.Channels.Create(ctx, &domain.Channel{
			ChannelName:     ch.name,
			OwnerID:         userIDs[i],
			Description:     ch.description,
			BannerURL:       ch.banner,
			SubscriberCount: ch.subscribers,
		})
		if err != nil {
			return nil, fmt.Errorf("create channel %s: %w", ch.name, err)
		}
		channelIDs[i] = id
	}

	// 3. Videos, uploaded by the channel owner
	videoIDs := make([]primitive.ObjectID, len(videos))
	for i, v := range videos {
		uploadedAt, err := time.Parse(time.DateOnly, v.uploaded)
		if err != nil {
			return nil, fmt.Errorf("video %s: %w", v.videoID, err)
		}
		channelID := channelIDs[v.owner]
		id, err := repos.Videos.Create(ctx, &domain.Video{
			VideoID:      v.videoID,
			Title:        v.title,
			ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/225", v.videoID),
			MediaURL:     sampleMediaBase + v.media,
			Description:  v.description,
			Category:     v.category,
			ChannelID:    &channelID,
			UploaderID:   userIDs[v.owner],
			ViewCount:    v.views,
			LikeCount:    v.likes,
			DislikeCount: v.dislikes,
			UploadedAt:   uploadedAt.UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("create video %s: %w", v.videoID, err)
		}
		videoIDs[i] = id
	}

	// 4. Comments
	for _, c := range comments {
		if _, err := repos.Comments.Create(ctx, &domain.Comment{
			Text:     c.text,
			AuthorID: userIDs[c.author],
			VideoID:  videoIDs[c.video],
		}); err != nil {
			return nil, fmt.Errorf("create comment: %w", err)
		}
	}

	summary := &Summary{
		Users:    len(users),
		Channels: len(channels),
		Videos:   len(videos),
		Comments: len(comments),
	}
	log.WithFields(logrus.Fields{
		"users":    summary.Users,
		"channels": summary.Channels,
		"videos":   summary.Videos,
		"comments": summary.Comments,
	}).Info("Seeded demo data")
	return summary, nil
}
