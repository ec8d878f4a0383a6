package database

// Sortable columns are allow-listed per endpoint; a caller-supplied field
// name is never interpolated into ORDER BY. Unrecognized names fall back to
// creation time.

var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"title":     "v.title",
	"views":     "v.views",
	"duration":  "v.duration",
}

var commentSortColumns = map[string]string{
	"createdAt": "c.created_at",
	"likeCount": "like_count",
}

func videoSortColumn(sortBy string) string {
	if col, ok := videoSortColumns[sortBy]; ok {
		return col
	}
	return "v.created_at"
}

func commentSortColumn(sortBy string) string {
	if col, ok := commentSortColumns[sortBy]; ok {
		return col
	}
	return "c.created_at"
}

// sortDirection treats "asc" as ascending and anything else as descending.
func sortDirection(sortType string) string {
	if sortType == "asc" {
		return "ASC"
	}
	return "DESC"
}
