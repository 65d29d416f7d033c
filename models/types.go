package models

import "time"

// Poll scope constants
const (
	PollTypeCity  = "city"
	PollTypeGroup = "group"
)

// Membership status constants
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDenied   = "denied"
)

// Request types

type SignupRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
	Name        string `json:"name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	CityID      string `json:"city_id" validate:"required"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	CityID    *string `json:"city_id" validate:"omitempty,min=1"`
	Anonymous *bool   `json:"anonymous"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type CastVoteRequest struct {
	UserID string `json:"user_id" validate:"required"`
	PollID string `json:"poll_id" validate:"required"`
	BarID  string `json:"bar_id" validate:"required"`
}

type CreateGroupRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	CityID  string `json:"city_id" validate:"required"`
	AdminID string `json:"admin_id" validate:"required"`
}

type DeleteGroupRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type InviteRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
	InviterID   string `json:"inviter_id" validate:"required"`
}

type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted denied"`
}

// Response types

type SignupResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

type ProfileResponse struct {
	User    Profile `json:"user"`
	Message string  `json:"message,omitempty"`
}

type TodayPollResponse struct {
	Poll Poll `json:"poll"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type VoteStatusResponse struct {
	HasVoted bool `json:"hasVoted"`
}

type VoteHistoryResponse struct {
	Votes []VoteRecord `json:"votes"`
}

type CreateGroupResponse struct {
	Group   GroupSummary `json:"group"`
	Message string       `json:"message"`
}

type RespondResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Group   *GroupSummary `json:"group"`
}

type GroupsResponse struct {
	Groups      []GroupSummary `json:"groups"`
	Invitations []Invitation   `json:"invitations"`
}

type GroupDetailResponse struct {
	Group GroupDetail `json:"group"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CitiesResponse struct {
	Cities []City `json:"cities"`
}

type CityResponse struct {
	City City `json:"city"`
}

// Domain types

type City struct {
	ID   string `json:"city_id"`
	Name string `json:"city_name"`
}

type Bar struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

type User struct {
	ID                  string     `json:"user_id"`
	PhoneNumber         string     `json:"phone_number"`
	Name                string     `json:"name"`
	CityID              string     `json:"city_id"`
	Anonymous           bool       `json:"anonymous_flag"`
	LastAnonymousChange *time.Time `json:"-"`
}

// Profile is a user as shown on the profile page, with the state of the
// weekly anonymity window.
type Profile struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	PhoneNumber        string     `json:"phone_number"`
	CityID             string     `json:"city_id"`
	CityName           string     `json:"city_name"`
	Anonymous          bool       `json:"anonymous"`
	CanChangeAnonymous bool       `json:"can_change_anonymous"`
	NextChangeDate     *time.Time `json:"next_change_date"`
	HoursRemaining     *int       `json:"hours_remaining"`
}

type Poll struct {
	ID       string  `json:"poll_id"`
	Date     string  `json:"poll_date"`
	PollType string  `json:"poll_type"`
	CityID   string  `json:"city_id"`
	GroupID  *string `json:"group_id,omitempty"`
}

type Vote struct {
	ID        string    `json:"vote_id"`
	UserID    string    `json:"user_id"`
	PollID    string    `json:"poll_id"`
	BarID     string    `json:"bar_id"`
	Date      string    `json:"vote_date"`
	TimeVoted time.Time `json:"time_voted"`
}

// VoteRecord is one entry of a user's vote history.
type VoteRecord struct {
	ID        string    `json:"id"`
	TimeVoted time.Time `json:"time_voted"`
	BarName   string    `json:"bar_name"`
	PollType  string    `json:"poll_type"`
	Date      string    `json:"date"`
	CityName  string    `json:"city_name"`
	GroupID   *string   `json:"group_id"`
	GroupName *string   `json:"group_name"`
}

type Voter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BarResult struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Votes          int     `json:"votes"`
	VotePercentage int     `json:"votePercentage"`
	Voters         []Voter `json:"voters"`
}

type PollResults struct {
	PollID     string      `json:"poll_id"`
	Bars       []BarResult `json:"bars"`
	TotalVotes int         `json:"total_votes"`
}

type GroupSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CityID   string `json:"city_id"`
	CityName string `json:"city_name,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

type GroupDetail struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	CityID   string   `json:"city_id"`
	CityName string   `json:"city_name"`
	AdminID  string   `json:"admin_id"`
	IsAdmin  bool     `json:"is_admin"`
	Members  []Member `json:"members"`
}

type Invitation struct {
	GroupID   string `json:"id"`
	GroupName string `json:"group_name"`
	CityName  string `json:"city_name"`
	FromName  string `json:"from_name"`
	FromID    string `json:"from_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
