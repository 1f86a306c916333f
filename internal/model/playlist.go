package model

// Item represents one downloadable media unit: a single video, or one entry
// of a playlist or channel
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ItemList is the result of the metadata pre-pass. Entries may be empty when
// the source could not enumerate, which counts as exactly one item.
type ItemList struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url"`
	Entries []Item `json:"entries,omitempty"`
}

// NewItemList creates an empty list for the given source URL
func NewItemList(url string) *ItemList {
	return &ItemList{
		URL:     url,
		Entries: make([]Item, 0),
	}
}

// AddItem appends an entry to the list
func (l *ItemList) AddItem(item Item) {
	l.Entries = append(l.Entries, item)
}

// Count returns the number of items the download pass will produce
func (l *ItemList) Count() int {
	if l == nil || len(l.Entries) == 0 {
		return 1
	}
	return len(l.Entries)
}
