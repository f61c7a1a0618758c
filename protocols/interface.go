package protocols

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"remotebrowse/config"
)

type ProtocolKind string

const (
	KindFTP  ProtocolKind = "ftp"
	KindSFTP ProtocolKind = "sftp"
)

// Label is the upper-cased form shown to users (FTP, SFTP).
func (k ProtocolKind) Label() string {
	return strings.ToUpper(string(k))
}

// RawEntry is one unnormalized directory-listing record. Each protocol
// contributes its own variant; consumers dispatch on the concrete type and
// fall back to EntryName for variants they do not know.
type RawEntry interface {
	EntryName() string
}

// SFTPEntry carries the full attribute record the SFTP protocol provides.
type SFTPEntry struct {
	Name  string
	Size  int64
	MTime int64  // unix seconds, 0 when unknown
	Mode  uint32 // POSIX mode bits
}

func (e SFTPEntry) EntryName() string { return e.Name }

// FTPEntry carries whatever the FTP server exposed. HasFacts is false when
// the listing came from a bare NLST name stream, in which case Size and Dir
// hold nothing meaningful.
type FTPEntry struct {
	Name     string
	Size     int64
	Dir      bool
	HasFacts bool
}

func (e FTPEntry) EntryName() string { return e.Name }

// Session is one live connection to an endpoint, scoped to a single browse
// request. Connect either fully succeeds or leaves the session unusable;
// callers must not invoke the other methods after a failed Connect.
type Session interface {
	Connect() error

	// ChangeDirectory moves the session to path; the empty string means
	// return to root. After a failure the session's current path is
	// unspecified and the caller decides how to recover.
	ChangeDirectory(path string) error

	// CurrentPath is the remote path the session currently reports.
	CurrentPath() string

	// ListFiles returns the raw, unsorted contents of the current path.
	ListFiles() ([]RawEntry, error)

	// Disconnect releases the connection. Idempotent, never fails.
	Disconnect()

	Kind() ProtocolKind
}

// NewSession builds the session variant matching the endpoint's protocol.
// The connection itself is not opened until Connect.
func NewSession(ep config.Endpoint, timeout time.Duration, logger *zap.Logger) (Session, error) {
	switch ep.Protocol {
	case config.ProtocolFTP:
		return NewFTPSession(ep, timeout, logger), nil
	case config.ProtocolSFTP:
		return NewSFTPSession(ep, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown protocol %q for endpoint %q", ep.Protocol, ep.ID)
	}
}
