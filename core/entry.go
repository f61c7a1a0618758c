package core

import "fmt"

// FileEntry is the normalized, protocol-independent listing record. Fields
// a protocol could not supply keep their zero value ("" / 0 / false).
type FileEntry struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeHuman   string `json:"size_human"`
	ModifiedAt  string `json:"modified_at,omitempty"`
	IsDir       bool   `json:"is_directory"`
	Permissions string `json:"permissions,omitempty"`
}

// Listing is the successful outcome of one browse request. ListingError is
// set when the connection succeeded but reading the directory did not; the
// navigation context is still returned so the user keeps their bearings.
type Listing struct {
	EndpointID   string      `json:"endpoint_id"`
	EndpointName string      `json:"endpoint_name"`
	Protocol     string      `json:"protocol_kind"`
	CurrentPath  string      `json:"current_path"`
	ParentPath   string      `json:"parent_path,omitempty"`
	Entries      []FileEntry `json:"entries"`
	ListingError string      `json:"listing_error,omitempty"`
	EntryCount   int         `json:"entry_count"`
}

type ErrorKind string

const (
	KindEndpointNotFound ErrorKind = "endpoint_not_found"
	KindConnectionFailed ErrorKind = "connection_failed"
)

// BrowseError is a terminal browse failure. Navigation and listing failures
// never become one; they are absorbed into the Listing.
type BrowseError struct {
	Kind         ErrorKind
	Message      string
	EndpointID   string
	EndpointName string
}

func (e *BrowseError) Error() string {
	if e.EndpointName != "" {
		return fmt.Sprintf("%s: %s", e.EndpointName, e.Message)
	}
	return e.Message
}
