package models

// ListKind names one of the two persistent relationship sets
type ListKind string

const (
	ListFollowing ListKind = "following"
	ListFollowers ListKind = "followers"
)

// UserRecord is a single row scraped from a following/followers list.
// Handle is the identity; records are never mutated after extraction.
type UserRecord struct {
	Handle      string `json:"authorHandle"`
	DisplayName string `json:"authorName"`
	IsVerified  bool   `json:"isVerified"`
}

// OutputRecord is the recovery record consumed by the downstream follow tracker.
// Field order matches the tracker's posts.json layout.
type OutputRecord struct {
	PostID          string `json:"postId"`
	AuthorHandle    string `json:"authorHandle"`
	AuthorName      string `json:"authorName"`
	AuthorURL       string `json:"authorUrl"`
	Content         string `json:"content"`
	PostURL         string `json:"postUrl"`
	PostTime        string `json:"postTime"`
	MatchedKeyword  string `json:"matchedKeyword"`
	CollectTime     string `json:"collectTime"`
	FollowTime      string `json:"followTime"`
	IsFollowed      bool   `json:"isFollowed"`
	IsHidden        bool   `json:"isHidden"`
	LastCheckedTime string `json:"lastCheckedTime"`
}

// IsMutual reports whether the record was marked as a mutual follow at export time
func (r OutputRecord) IsMutual() bool {
	return r.LastCheckedTime != ""
}
