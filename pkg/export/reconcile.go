// Package export reconciles the following and followers sets into recovery
// records and writes them out for the downstream follow tracker.
package export

import (
	"strings"
	"time"

	"xfollow/pkg/models"
	"xfollow/pkg/store"
)

// TimeLayout is the timestamp format of every time field in a recovery record
const TimeLayout = "2006-01-02 15:04:05"

const (
	postIDPrefix = "recovered_"

	mutualContent    = "[互关恢复]"
	mutualKeyword    = "互关"
	followingContent = "[已关注恢复]"
	followingKeyword = "已关注恢复"
)

// Report is the result of reconciling the two persistent sets
type Report struct {
	Records        []models.OutputRecord
	FollowingCount int
	FollowersCount int
	MutualCount    int
	GeneratedAt    string
}

// Reconcile builds one recovery record per entry of following, in insertion
// order. Handles only present in followers produce no record; followers is used
// solely to decide which followed accounts are mutual.
func Reconcile(following, followers *store.RecordSet, now time.Time, profileBaseURL string) Report {
	stamp := FormatTime(now)
	base := strings.TrimRight(profileBaseURL, "/")

	report := Report{
		Records:        make([]models.OutputRecord, 0, following.Len()),
		FollowingCount: following.Len(),
		FollowersCount: followers.Len(),
		GeneratedAt:    stamp,
	}

	following.Each(func(user models.UserRecord) {
		mutual := followers.Has(user.Handle)

		rec := models.OutputRecord{
			PostID:         postIDPrefix + user.Handle,
			AuthorHandle:   user.Handle,
			AuthorName:     user.DisplayName,
			AuthorURL:      base + "/" + user.Handle,
			Content:        followingContent,
			MatchedKeyword: followingKeyword,
			CollectTime:    stamp,
			FollowTime:     stamp,
			IsFollowed:     true,
			IsHidden:       false,
		}
		if mutual {
			rec.Content = mutualContent
			rec.MatchedKeyword = mutualKeyword
			rec.LastCheckedTime = stamp
		}
		if rec.IsMutual() {
			report.MutualCount++
		}

		report.Records = append(report.Records, rec)
	})

	return report
}

// FormatTime renders t in UTC with second precision and no zone suffix
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
