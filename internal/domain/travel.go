package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Travel represents a trip posting seeking companions.
type Travel struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"travelId"`
	UserID          primitive.ObjectID   `bson:"userId" json:"userId"`
	Thumbnail       string               `bson:"thumbnail" json:"thumbnail"`
	TravelTitle     string               `bson:"travelTitle" json:"travelTitle"`
	TravelContent   string               `bson:"travelContent" json:"travelContent"`
	Tag             []string             `bson:"tag" json:"tag"`
	TravelCourse    []string             `bson:"travelCourse" json:"travelCourse"`
	IncludedItems   []string             `bson:"includedItems,omitempty" json:"includedItems,omitempty"`
	ExcludedItems   []string             `bson:"excludedItems,omitempty" json:"excludedItems,omitempty"`
	MeetingTime     []string             `bson:"meetingTime,omitempty" json:"meetingTime,omitempty"`
	MeetingPlace    string               `bson:"meetingPlace,omitempty" json:"meetingPlace,omitempty"`
	TravelPrice     int                  `bson:"travelPrice" json:"travelPrice"`
	TravelFAQ       []FAQ                `bson:"travelFAQ,omitempty" json:"travelFAQ,omitempty"`
	TeamID          []primitive.ObjectID `bson:"teamId" json:"teamId"`
	TravelActive    bool                 `bson:"travelActive" json:"travelActive"`
	ReviewWrite     bool                 `bson:"reviewWrite" json:"reviewWrite"`
	IsDeleted       bool                 `bson:"isDeleted" json:"-"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// FAQ is a question/answer pair attached to a travel posting.
type FAQ struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// CreateTravelRequest creates a travel posting together with its first team.
type CreateTravelRequest struct {
	UserID        string              `json:"userId"`
	Thumbnail     string              `json:"thumbnail"`
	TravelTitle   string              `json:"travelTitle"`
	TravelContent string              `json:"travelContent"`
	Tag           []string            `json:"tag"`
	TravelCourse  []string            `json:"travelCourse"`
	IncludedItems []string            `json:"includedItems,omitempty"`
	ExcludedItems []string            `json:"excludedItems,omitempty"`
	MeetingTime   []string            `json:"meetingTime,omitempty"`
	MeetingPlace  string              `json:"meetingPlace,omitempty"`
	TravelPrice   int                 `json:"travelPrice"`
	TravelFAQ     []FAQ               `json:"travelFAQ,omitempty"`
	Team          []CreateTeamRequest `json:"team"`
}

// TravelSummary is a travel list item with its derived aggregates.
type TravelSummary struct {
	TravelID    primitive.ObjectID `json:"travelId"`
	TravelTitle string             `json:"travelTitle"`
	Price       int                `json:"price"`
	Thumbnail   string             `json:"thumbnail"`
	Review      ReviewAggregate    `json:"review"`
	CreatedBy   CreatedBy          `json:"createdBy"`
	Tags        []string           `json:"tags"`
	Bookmark    bool               `json:"bookmark"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// CreatedBy identifies the posting owner in list responses.
type CreatedBy struct {
	UserID   primitive.ObjectID `json:"userId"`
	UserName string             `json:"userName"`
}

// ReviewAggregate carries the derived review values for a travel.
type ReviewAggregate struct {
	TravelScore float64 `json:"travelScore"`
	ReviewCnt   int64   `json:"reviewCnt"`
}

// MyCreatedTravel is a management-page row for a travel the user owns.
type MyCreatedTravel struct {
	TravelID           primitive.ObjectID `json:"travelId"`
	TravelTitle        string             `json:"travelTitle"`
	TravelPrice        int                `json:"travelPrice"`
	TravelReviewCount  int64              `json:"travelReviewCount"`
	TravelActive       bool               `json:"travelActive"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	ReviewAverage      float64            `json:"reviewAverage"`
	ApproveWaitingCount int               `json:"approveWaitingCount"`
}

// TravelDetail is the full detail view of a travel posting.
type TravelDetail struct {
	Guide         GuideSummary   `json:"guide"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Price         int            `json:"price"`
	Thumbnail     string         `json:"thumbnail"`
	Tag           []string       `json:"tag"`
	TravelCourse  []string       `json:"travelCourse"`
	IncludedItems []string       `json:"includedItems,omitempty"`
	ExcludedItems []string       `json:"excludedItems,omitempty"`
	MeetingTime   []string       `json:"meetingTime,omitempty"`
	MeetingPlace  string         `json:"meetingPlace,omitempty"`
	FAQ           []FAQ          `json:"faq,omitempty"`
	Reviews       []ReviewItem   `json:"reviews"`
	Teams         []TeamOverview `json:"teams"`
	TotalRating   float64        `json:"totalRating"`
	Bookmark      int64          `json:"bookmark"`
}

// GuideSummary describes a posting owner with their derived guide rating.
type GuideSummary struct {
	UserProfileImage string  `json:"userProfileImage,omitempty"`
	SocialName       string  `json:"socialName"`
	UserEmail        string  `json:"userEmail"`
	GuideTotalRating float64 `json:"guideTotalRating"`
}
