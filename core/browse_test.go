package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"remotebrowse/config"
	"remotebrowse/protocols"
)

type fakeStore map[string]config.Endpoint

func (s fakeStore) Find(id string) (config.Endpoint, bool) {
	ep, ok := s[id]
	return ep, ok
}

type fakeSession struct {
	kind       protocols.ProtocolKind
	connectErr error
	cdErrs     map[string]error // key "" is the return-to-root call
	listErr    error
	entries    []protocols.RawEntry

	current     string
	cdCalls     []string
	disconnects int
}

func (f *fakeSession) Kind() protocols.ProtocolKind { return f.kind }

func (f *fakeSession) Connect() error { return f.connectErr }

func (f *fakeSession) ChangeDirectory(path string) error {
	f.cdCalls = append(f.cdCalls, path)
	if err := f.cdErrs[path]; err != nil {
		return err
	}
	if path == "" {
		path = "/"
	}
	f.current = path
	return nil
}

func (f *fakeSession) CurrentPath() string {
	if f.current == "" {
		return "/"
	}
	return f.current
}

func (f *fakeSession) ListFiles() ([]protocols.RawEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeSession) Disconnect() { f.disconnects++ }

func newTestBrowser(store EndpointStore, sess *fakeSession) *Browser {
	b := NewBrowser(store, time.Second, zap.NewNop())
	b.newSession = func(config.Endpoint) (protocols.Session, error) {
		return sess, nil
	}
	return b
}

func sftpStore() fakeStore {
	return fakeStore{
		"42": {ID: "42", Name: "build archive", Protocol: config.ProtocolSFTP},
	}
}

func TestBrowseSFTPListing(t *testing.T) {
	sess := &fakeSession{
		kind: protocols.KindSFTP,
		entries: []protocols.RawEntry{
			protocols.SFTPEntry{Name: ".", Mode: 0040755},
			protocols.SFTPEntry{Name: "docs", Mode: 0040755},
			protocols.SFTPEntry{Name: "a.txt", Mode: 0100644, Size: 2048, MTime: 1700000000},
		},
	}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if listing.Protocol != "SFTP" {
		t.Errorf("protocol label = %q", listing.Protocol)
	}
	if listing.CurrentPath != "/" || listing.ParentPath != "" {
		t.Errorf("path context = %q parent %q", listing.CurrentPath, listing.ParentPath)
	}
	if listing.EntryCount != 2 || len(listing.Entries) != 2 {
		t.Fatalf("entry count = %d (%d entries)", listing.EntryCount, len(listing.Entries))
	}

	docs, atxt := listing.Entries[0], listing.Entries[1]
	if docs.Name != "docs" || !docs.IsDir || docs.Permissions != "drwxr-xr-x" {
		t.Errorf("docs entry = %+v", docs)
	}
	if atxt.Name != "a.txt" || atxt.IsDir || atxt.Permissions != "-rw-r--r--" || atxt.SizeHuman != "2.0 KB" {
		t.Errorf("a.txt entry = %+v", atxt)
	}
	if sess.disconnects != 1 {
		t.Errorf("disconnects = %d", sess.disconnects)
	}
}

func TestBrowseEndpointNotFound(t *testing.T) {
	b := newTestBrowser(sftpStore(), &fakeSession{})

	_, err := b.Browse("7", "")
	var berr *BrowseError
	if !errors.As(err, &berr) {
		t.Fatalf("error = %v", err)
	}
	if berr.Kind != KindEndpointNotFound || berr.EndpointID != "7" {
		t.Errorf("error = %+v", berr)
	}
}

func TestBrowseConnectionFailed(t *testing.T) {
	sess := &fakeSession{
		kind:       protocols.KindSFTP,
		connectErr: errors.New("auth rejected"),
	}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "/anything")
	if listing != nil {
		t.Fatalf("got listing alongside error: %+v", listing)
	}
	var berr *BrowseError
	if !errors.As(err, &berr) {
		t.Fatalf("error = %v", err)
	}
	if berr.Kind != KindConnectionFailed || berr.EndpointName != "build archive" {
		t.Errorf("error = %+v", berr)
	}
	if !strings.Contains(berr.Error(), "build archive") || !strings.Contains(berr.Error(), "auth rejected") {
		t.Errorf("message %q lacks endpoint or cause", berr.Error())
	}
	if len(sess.cdCalls) != 0 {
		t.Errorf("navigation attempted on failed session: %v", sess.cdCalls)
	}
}

func TestBrowseNavigationFallsBackToRoot(t *testing.T) {
	sess := &fakeSession{
		kind:   protocols.KindSFTP,
		cdErrs: map[string]error{"/missing": errors.New("no such file")},
		entries: []protocols.RawEntry{
			protocols.SFTPEntry{Name: "readme", Mode: 0100644},
		},
	}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "/missing")
	if err != nil {
		t.Fatalf("navigation failure escaped: %v", err)
	}
	if got := sess.cdCalls; len(got) != 2 || got[0] != "/missing" || got[1] != "" {
		t.Fatalf("cd calls = %v", got)
	}
	if listing.CurrentPath != "/" {
		t.Errorf("current path = %q, want root fallback", listing.CurrentPath)
	}
	if listing.EntryCount != 1 {
		t.Errorf("root listing lost: %+v", listing)
	}
}

func TestBrowseFailedFallbackIsSwallowed(t *testing.T) {
	sess := &fakeSession{
		kind: protocols.KindSFTP,
		cdErrs: map[string]error{
			"/missing": errors.New("no such file"),
			"":         errors.New("root gone too"),
		},
	}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "/missing")
	if err != nil {
		t.Fatalf("failed fallback escaped: %v", err)
	}
	if listing.CurrentPath != "/" {
		t.Errorf("current path = %q", listing.CurrentPath)
	}
}

func TestBrowseNavigationSuccess(t *testing.T) {
	sess := &fakeSession{kind: protocols.KindSFTP}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "/a/b")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if listing.CurrentPath != "/a/b" || listing.ParentPath != "/a" {
		t.Errorf("path context = %q parent %q", listing.CurrentPath, listing.ParentPath)
	}
}

func TestBrowseListingFailureIsNonFatal(t *testing.T) {
	sess := &fakeSession{
		kind:    protocols.KindSFTP,
		listErr: errors.New("permission denied"),
	}
	b := newTestBrowser(sftpStore(), sess)

	listing, err := b.Browse("42", "")
	if err != nil {
		t.Fatalf("listing failure escaped: %v", err)
	}
	if listing.ListingError != "permission denied" {
		t.Errorf("listing_error = %q", listing.ListingError)
	}
	if listing.EntryCount != 0 || len(listing.Entries) != 0 {
		t.Errorf("entries present despite failure: %+v", listing.Entries)
	}
	if listing.EndpointName != "build archive" || listing.CurrentPath != "/" {
		t.Errorf("navigation context lost: %+v", listing)
	}
}
