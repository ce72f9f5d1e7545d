package registry

import "time"

// Crate is the subset of crates.io crate fields required by the app.
type Crate struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Downloads        int64     `json:"downloads"`
	RecentDownloads  int64     `json:"recent_downloads"`
	MaxVersion       string    `json:"max_version"`
	MaxStableVersion string    `json:"max_stable_version"`
	Homepage         string    `json:"homepage"`
	Repository       string    `json:"repository"`
	Documentation    string    `json:"documentation"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	ExactMatch       bool      `json:"exact_match"`
}

// Version describes one published version of a crate.
type Version struct {
	Num       string    `json:"num"`
	Downloads int64     `json:"downloads"`
	CreatedAt time.Time `json:"created_at"`
	Yanked    bool      `json:"yanked"`
}

// Detail is the full record returned for a single crate. Readme holds the
// rendered HTML readme when the registry has one.
type Detail struct {
	Crate      Crate
	Versions   []Version
	Keywords   []string
	Categories []string
	Readme     string
}

// Summary is the registry front-page data.
type Summary struct {
	NumCrates      int64   `json:"num_crates"`
	NumDownloads   int64   `json:"num_downloads"`
	NewCrates      []Crate `json:"new_crates"`
	MostDownloaded []Crate `json:"most_downloaded"`
	JustUpdated    []Crate `json:"just_updated"`
}

// Sort is a crates.io search sort key.
type Sort string

const (
	SortRelevance       Sort = "relevance"
	SortDownloads       Sort = "downloads"
	SortRecentDownloads Sort = "recent-downloads"
	SortRecentUpdates   Sort = "recent-updates"
	SortNew             Sort = "new"
	SortAlphabetical    Sort = "alpha"
)

var sortCycle = []Sort{
	SortRelevance,
	SortDownloads,
	SortRecentDownloads,
	SortRecentUpdates,
	SortNew,
	SortAlphabetical,
}

func (s Sort) index() int {
	for i, v := range sortCycle {
		if v == s {
			return i
		}
	}
	return 0
}

// Next returns the following sort key in the cycle, wrapping around.
func (s Sort) Next() Sort {
	return sortCycle[(s.index()+1)%len(sortCycle)]
}

// Previous returns the preceding sort key in the cycle, wrapping around.
func (s Sort) Previous() Sort {
	return sortCycle[(s.index()+len(sortCycle)-1)%len(sortCycle)]
}

func (s Sort) String() string {
	if string(s) == "" {
		return string(SortRelevance)
	}
	return string(s)
}

// SearchQuery is one page of a crate search.
type SearchQuery struct {
	Query    string
	Page     uint64
	PageSize uint64
	Sort     Sort
}
