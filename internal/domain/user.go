package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform user. Users are created on first login by
// upserting on socialName/userEmail and are never hard-deleted.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"userId"`
	UserProfileImage string               `bson:"userProfileImage,omitempty" json:"userProfileImage,omitempty"`
	SocialName       string               `bson:"socialName" json:"socialName"`
	UserName         string               `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail        string               `bson:"userEmail" json:"userEmail"`
	PhoneNumber      string               `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	MBTI             string               `bson:"mbti,omitempty" json:"mbti,omitempty"`
	IsVerifiedUser   bool                 `bson:"isVerifiedUser" json:"isVerifiedUser"`
	BankAccount      BankAccount          `bson:"bankAccount" json:"bankAccount"`
	MyCreatedTravel  []primitive.ObjectID `bson:"myCreatedTravel" json:"myCreatedTravel"`
	MyPassedTravel   []primitive.ObjectID `bson:"myPassedTravel" json:"myPassedTravel"`
	MyReviews        []primitive.ObjectID `bson:"myReviews" json:"myReviews"`
	MyBookmark       []primitive.ObjectID `bson:"myBookmark" json:"myBookmark"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// BankAccount holds a user's payout account.
type BankAccount struct {
	BankCode      string `bson:"bankCode,omitempty" json:"bankCode,omitempty"`
	AccountNumber string `bson:"accountNumber,omitempty" json:"accountNumber,omitempty"`
}

// DisplayName prefers the profile name over the social login name.
func (u *User) DisplayName() string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.SocialName
}

// UserSummary is the subset of user fields embedded in list responses.
type UserSummary struct {
	UserID           primitive.ObjectID `json:"userId"`
	SocialName       string             `json:"socialName,omitempty"`
	UserName         string             `json:"userName,omitempty"`
	UserEmail        string             `json:"userEmail,omitempty"`
	UserProfileImage string             `json:"userProfileImage,omitempty"`
	PhoneNumber      string             `json:"phoneNumber,omitempty"`
	MBTI             string             `json:"mbti,omitempty"`
	IsVerifiedUser   bool               `json:"isVerifiedUser"`
}

// Summary shapes a user for embedding in responses.
func (u *User) Summary() UserSummary {
	return UserSummary{
		UserID:           u.ID,
		SocialName:       u.SocialName,
		UserName:         u.UserName,
		UserEmail:        u.UserEmail,
		UserProfileImage: u.UserProfileImage,
		PhoneNumber:      u.PhoneNumber,
		MBTI:             u.MBTI,
		IsVerifiedUser:   u.IsVerifiedUser,
	}
}

// LoginRequest represents the social-login upsert request.
type LoginRequest struct {
	SocialName       string `json:"socialName"`
	UserEmail        string `json:"userEmail"`
	UserProfileImage string `json:"userProfileImage,omitempty"`
}

// LoginResponse is returned after a successful login or signup.
type LoginResponse struct {
	UserID    primitive.ObjectID `json:"userId"`
	UserScore float64            `json:"userScore"`
	Token     string             `json:"token"`
}

// UpdateMBTIRequest updates a user's MBTI type.
type UpdateMBTIRequest struct {
	UserID string `json:"userId"`
	MBTI   string `json:"mbti"`
}

// UpdatePhoneRequest updates a user's phone number.
type UpdatePhoneRequest struct {
	UserID      string `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateBankAccountRequest updates a user's payout account.
type UpdateBankAccountRequest struct {
	UserID        string `json:"userId"`
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
}
