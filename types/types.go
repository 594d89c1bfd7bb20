package types

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// OnlineImage is one image-search hit attached to an assistant answer.
type OnlineImage struct {
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	PageURL      string `json:"pageUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// OnlineVideo is one YouTube result, normalized so URL is always set.
type OnlineVideo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ChannelTitle string `json:"channelTitle,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
}

type OnlineSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Attachments are present on a message only when at least one list is non-empty.
type Attachments struct {
	Images  []OnlineImage  `json:"images,omitempty"`
	Videos  []OnlineVideo  `json:"videos,omitempty"`
	Sources []OnlineSource `json:"sources,omitempty"`
}

// ChatMessage is one finalized entry of the chat transcript.
type ChatMessage struct {
	ID          uuid.UUID    `json:"id"`
	Role        Role         `json:"role"`
	Text        string       `json:"text"`
	Attachments *Attachments `json:"attachments,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OnboardingProgress mirrors the onboarding_progress table. Every field except
// UserID is written sparsely: an upsert touches only the columns the caller sent.
type OnboardingProgress struct {
	UserID       uuid.UUID `json:"user_id"`
	ClassID      string    `json:"class_id,omitempty"`
	Subjects     []string  `json:"subjects,omitempty"`
	CurrentStep  int       `json:"current_step,omitempty"`
	MotherTongue string    `json:"mother_tongue,omitempty"`
	SchoolType   string    `json:"school_type,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DownloadStatus string

const (
	DownloadDone        DownloadStatus = "done"
	DownloadDownloading DownloadStatus = "downloading"
	DownloadQueued      DownloadStatus = "queued"
	DownloadFailed      DownloadStatus = "failed"
)

// DownloadItem is one offline pack in the content-download queue,
// written by the loader service and listed by the API.
type DownloadItem struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	SizeLabel string         `json:"size"`
	Status    DownloadStatus `json:"status"`
	Progress  float64        `json:"progress"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Config drives the loader service.
type Config struct {
	MonitoringTime time.Duration
	SourceDir      string
	PacksDir       string
	ArchiveDir     string
	BadDir         string
}
