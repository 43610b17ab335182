package models

const (
	FundraiserSingleBoard = "single_board"
	FundraiserClassroom   = "classroom"
)

type EducationBoard struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	Slug                 string `json:"slug"`
	Description          string `json:"description"`
	Image                string `json:"image"`
	Price                Price  `json:"price"`
	InstallationIncluded bool   `json:"installation_included"`
	Specifications       string `json:"specifications"`
	IsActive             bool   `json:"is_active"`
}

type ClassroomPackage struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	Slug                 string `json:"slug"`
	Description          string `json:"description"`
	BoardsIncluded       int    `json:"boards_included"`
	Price                Price  `json:"price"`
	InstallationIncluded bool   `json:"installation_included"`
	IsActive             bool   `json:"is_active"`
}

type School struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	County     string `json:"county"`
	SchoolType string `json:"school_type"`
}

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Amount Price  `json:"amount"`
}

type Fundraiser struct {
	ID                 int                `json:"id"`
	FundraiserID       string             `json:"fundraiser_id"`
	FundraiserType     string             `json:"fundraiser_type"`
	SchoolName         string             `json:"school_name"`
	SchoolLocation     string             `json:"school_location"`
	SchoolDescription  string             `json:"school_description"`
	TargetAmount       Price              `json:"target_amount"`
	CurrentAmount      Price              `json:"current_amount"`
	ProgressPercentage float64            `json:"progress_percentage"`
	ShareLink          string             `json:"share_link"`
	Status             string             `json:"status"`
	Creator            string             `json:"creator"`
	Donations          []Donation         `json:"donations"`
	Leaderboard        []LeaderboardEntry `json:"leaderboard"`
	CreatedAt          string             `json:"created_at"`
	EndDate            *string            `json:"end_date"`
}

type FundraiserRequest struct {
	FundraiserType    string `json:"fundraiser_type"`
	SchoolName        string `json:"school_name"`
	SchoolLocation    string `json:"school_location"`
	SchoolDescription string `json:"school_description"`
	TargetAmount      Price  `json:"target_amount"`
	BoardID           *int   `json:"board_id,omitempty"`
	PackageID         *int   `json:"package_id,omitempty"`
	EndDate           string `json:"end_date,omitempty"`
}

type Donation struct {
	ID         int    `json:"id"`
	DonationID string `json:"donation_id"`
	DonorName  string `json:"donor_name"`
	Amount     Price  `json:"amount"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type DonationRequest struct {
	DonorName   string `json:"donor_name"`
	DonorEmail  string `json:"donor_email,omitempty"`
	DonorPhone  string `json:"donor_phone,omitempty"`
	Amount      Price  `json:"amount"`
	IsAnonymous bool   `json:"is_anonymous,omitempty"`
}

type DonationAmount struct {
	ID        int   `json:"id"`
	AmountUSD Price `json:"amount_usd"`
}

type EducationTablet struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Brand          string `json:"brand"`
	Size           string `json:"size"`
	Description    string `json:"description"`
	Specifications string `json:"specifications"`
	Image          string `json:"image"`
	Price          Price  `json:"price"`
	Stock          int    `json:"stock"`
	IsActive       bool   `json:"is_active"`
}

type TabletSoftware struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
	IsDefault   bool   `json:"is_default"`
}
