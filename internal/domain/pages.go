package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// TravelListPage is one page of travel summaries.
type TravelListPage struct {
	Travels  []TravelSummary `json:"travels"`
	PageInfo PageInfo        `json:"pageInfo"`
}

// TravelGuidePage is one page of guide postings.
type TravelGuidePage struct {
	Travels  []TravelGuideItem `json:"travels"`
	PageInfo PageInfo          `json:"pageInfo"`
}

// ReviewPage is one page of reviews with author summaries.
type ReviewPage struct {
	Reviews  []ReviewItem `json:"reviews"`
	PageInfo PageInfo     `json:"pageInfo"`
}

// ManagedApplicants is the applicant-management view for a travel the
// requesting user owns. Applicants are ordered waiting, approved, rejected,
// earliest application first within a status.
type ManagedApplicants struct {
	TravelID    primitive.ObjectID  `json:"travelId"`
	TravelTitle string              `json:"travelTitle"`
	Applicants  []AppliedUserDetail `json:"applicants"`
	PageInfo    PageInfo            `json:"pageInfo"`
}

// ManagedTeams lists a travel's teams with their approved members.
type ManagedTeams struct {
	TravelID    primitive.ObjectID `json:"travelId"`
	TravelTitle string             `json:"travelTitle"`
	Teams       []TeamOverview     `json:"teams"`
}
