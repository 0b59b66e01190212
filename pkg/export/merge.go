package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	xerrors "xfollow/pkg/errors"
	"xfollow/pkg/storage"
)

// MergeReport summarizes folding a recovery file into the tracker's posts file
type MergeReport struct {
	Existing int
	Incoming int
	Added    int
	Total    int
	Followed int
}

type postKey struct {
	AuthorHandle string `json:"authorHandle"`
	IsFollowed   bool   `json:"isFollowed"`
}

// MergeInto appends every record of recoveryPath whose authorHandle is not
// already in postsPath, and rewrites postsPath. Existing entries are kept
// verbatim, including fields this package does not know about. A missing
// postsPath is treated as an empty list.
func MergeInto(postsPath, recoveryPath string) (MergeReport, error) {
	existing, err := readPosts(postsPath, true)
	if err != nil {
		return MergeReport{}, err
	}
	incoming, err := readPosts(recoveryPath, false)
	if err != nil {
		return MergeReport{}, err
	}

	report := MergeReport{Existing: len(existing), Incoming: len(incoming)}

	seen := make(map[string]bool, len(existing))
	for _, raw := range existing {
		key, err := decodeKey(raw)
		if err != nil {
			return MergeReport{}, xerrors.Wrap(xerrors.ErrorTypeParsing, err, postsPath)
		}
		seen[key.AuthorHandle] = true
	}

	merged := existing
	for _, raw := range incoming {
		key, err := decodeKey(raw)
		if err != nil {
			return MergeReport{}, xerrors.Wrap(xerrors.ErrorTypeParsing, err, recoveryPath)
		}
		if seen[key.AuthorHandle] {
			continue
		}
		seen[key.AuthorHandle] = true
		merged = append(merged, raw)
		report.Added++
	}

	for _, raw := range merged {
		if key, _ := decodeKey(raw); key.IsFollowed {
			report.Followed++
		}
	}
	report.Total = len(merged)

	if merged == nil {
		merged = []json.RawMessage{}
	}
	data, err := encodeIndented(merged, "    ")
	if err != nil {
		return MergeReport{}, xerrors.Wrap(xerrors.ErrorTypeExport, err, "failed to encode posts")
	}
	if err := storage.WriteFileAtomic(postsPath, bytes.NewReader(data), 0644); err != nil {
		return MergeReport{}, xerrors.Wrap(xerrors.ErrorTypeExport, err, fmt.Sprintf("failed to write %s", postsPath))
	}

	return report, nil
}

func readPosts(path string, missingOK bool) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if missingOK && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, xerrors.Wrap(xerrors.ErrorTypeSource, err, fmt.Sprintf("failed to read %s", path))
	}

	var posts []json.RawMessage
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrorTypeParsing, err, fmt.Sprintf("failed to decode %s", path))
	}
	return posts, nil
}

func decodeKey(raw json.RawMessage) (postKey, error) {
	var key postKey
	err := json.Unmarshal(raw, &key)
	return key, err
}
