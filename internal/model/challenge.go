package model

import "time"

type Category struct {
	ID    int64  `json:"-"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type Challenge struct {
	ID           int64  `json:"-"`
	Title        string `json:"challengeName"`
	Category     string `json:"category"`
	Emoji        string `json:"emoji"`
	DurationDays int    `json:"durationDays"`
}

type Template struct {
	ID          int64
	ChallengeID int64
	Title       string
	Content     string
}

// UserChallenge - 유저의 챌린지 참여(enrollment) 행
type UserChallenge struct {
	ID          int64
	UserID      int64
	ChallengeID int64
	Completed   bool
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Writing - user_challenge_templates 한 행 (하루 단위 글)
type Writing struct {
	ID              int64
	UserChallengeID int64
	Title           string
	Content         string
	Complete        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DailyRow - 오늘 작성 목록 계산에 쓰이는 enrollment + challenge 조인 결과
type DailyRow struct {
	UserChallengeID int64
	ChallengeID     int64
	ChallengeName   string
	Category        string
	Emoji           string
	// Writing - 오늘 완료된 글. 아직 작성 전이면 nil
	Writing *Writing
}

type EnrollmentStatus struct {
	ChallengeName string    `json:"challengeName"`
	Category      string    `json:"category"`
	Emoji         string    `json:"emoji"`
	StartedAt     time.Time `json:"startedAt"`
	DurationDays  int       `json:"durationDays"`
	WrittenToday  bool      `json:"writtenToday"`
}

type WriteRequest struct {
	ChallengeName    string `json:"challengeName"`
	ChallengeTitle   string `json:"challengeTitle"`
	ChallengeContent string `json:"challengeContent"`
}

type ChallengeEntry struct {
	ChallengeName string `json:"challengeName"`
	Category      string `json:"category"`
}

type TemplateEntry struct {
	TemplateTitle   string `json:"templateTitle"`
	TemplateContent string `json:"templateContent"`
	Category        string `json:"category"`
	Image           string `json:"image"`
}

type TemplateData struct {
	ChallengeName     string          `json:"challengeName"`
	ChallengeCategory string          `json:"challengeCategory"`
	Templates         []TemplateEntry `json:"templates"`
}

type TemporaryWriting struct {
	Title    string `json:"title"`
	Writing  string `json:"writing"`
	Complete bool   `json:"complete"`
}

type NewChallengeResponse struct {
	ChallengingArray []ChallengeEntry `json:"challengingArray"`
	TemplateData     TemplateData     `json:"templateData"`
}

type WriteResponse struct {
	TemplateCertain    bool               `json:"templateCertain"`
	TemporaryChallenge []TemporaryWriting `json:"temporaryChallenge"`
	ChallengingArray   []ChallengeEntry   `json:"challengingArray"`
	TemplateData       TemplateData       `json:"templateData"`
}

type CatalogResponse struct {
	Categories []Category  `json:"categories"`
	Challenges []Challenge `json:"challenges"`
}

type SearchResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type MainResponse struct {
	Nickname           string             `json:"nickname"`
	Coupon             bool               `json:"coupon"`
	ChallengeCertain   bool               `json:"challengeCertain"`
	UserChallengeCount int                `json:"userChallengeCount"`
	UserChallenges     []EnrollmentStatus `json:"userChallenges"`
	Categories         []Category         `json:"categories"`
	Challenges         []Challenge        `json:"challenges"`
}
