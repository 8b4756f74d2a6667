package report

import "sort"

// Entry is the serialized form of one resource handle.
type Entry struct {
	// URI is the resource locator.
	URI string `json:"uri"`
	// Keyname is the join key (basename without extension).
	Keyname string `json:"keyname"`
	// Path is the local path, or the object key for object-store resources.
	Path string `json:"path"`
	// Bucket is set for object-store resources only.
	Bucket string `json:"bucket,omitempty"`
	// Pixels is the mismatch count. Set for diff and match entries only.
	Pixels *int `json:"pixels,omitempty"`
}

// WithPixels returns a copy of e carrying the mismatch count.
func (e Entry) WithPixels(pixels int) Entry {
	e.Pixels = &pixels
	return e
}

// Report is the four-way classification of a batch run.
type Report struct {
	New     []Entry `json:"new"`
	Diff    []Entry `json:"diff"`
	Match   []Entry `json:"match"`
	Removed []Entry `json:"removed"`
}

// New returns an empty report whose sections marshal as [] rather than null.
func New() *Report {
	return &Report{
		New:     []Entry{},
		Diff:    []Entry{},
		Match:   []Entry{},
		Removed: []Entry{},
	}
}

// Summary provides aggregate counts for a report.
type Summary struct {
	New     int `json:"new"`
	Diff    int `json:"diff"`
	Match   int `json:"match"`
	Removed int `json:"removed"`
}

// Total is the number of distinct keys across both collections.
func (s Summary) Total() int {
	return s.New + s.Diff + s.Match + s.Removed
}

// Summary counts the entries of each section.
func (r *Report) Summary() Summary {
	return Summary{
		New:     len(r.New),
		Diff:    len(r.Diff),
		Match:   len(r.Match),
		Removed: len(r.Removed),
	}
}

// Clean reports whether every key matched: nothing new, changed or removed.
func (r *Report) Clean() bool {
	return len(r.New) == 0 && len(r.Diff) == 0 && len(r.Removed) == 0
}

// Sort orders every section by keyname so output does not depend on the
// listing order of the backends.
func (r *Report) Sort() {
	for _, section := range [][]Entry{r.New, r.Diff, r.Match, r.Removed} {
		sort.SliceStable(section, func(i, j int) bool {
			return section[i].Keyname < section[j].Keyname
		})
	}
}

// Keynames returns the keynames of entries, in order.
func Keynames(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Keyname)
	}
	return names
}
