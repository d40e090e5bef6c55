package domain

// StatusClosed is the status code the Connect API uses for closed service records.
const StatusClosed = 34

// ServiceRecord is one ticket as the upstream Connect API reports it. Records
// are read-only to the proxy; every request works on a fresh snapshot.
type ServiceRecord struct {
	ID          int64  `json:"id"`
	Status      int    `json:"status"`
	Priority    int    `json:"priority"`
	Assignee    *int64 `json:"assignee,omitempty"`
	RequestUser *int64 `json:"request_user,omitempty"`
	InsertTime  int64  `json:"insert_time"`
	UpdateTime  int64  `json:"update_time"`
	DueDate     string `json:"due_date,omitempty"`
}

// Closed reports whether the record carries the upstream closed status.
func (r ServiceRecord) Closed() bool {
	return r.Status == StatusClosed
}

// Directory maps upstream numeric ids to display names. Directories are
// rebuilt on every request, so their staleness never outlives one request.
type Directory map[int64]string

// DirectoryEntry is one row of an upstream agent or end-user listing.
type DirectoryEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BuildDirectory folds listing rows into an id to name lookup.
func BuildDirectory(entries []DirectoryEntry) Directory {
	dir := make(Directory, len(entries))
	for _, entry := range entries {
		dir[entry.ID] = entry.Name
	}
	return dir
}
