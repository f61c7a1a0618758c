package core

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"remotebrowse/config"
	"remotebrowse/protocols"
)

// EndpointStore is the slice of the configuration store the browser needs.
type EndpointStore interface {
	Find(id string) (config.Endpoint, bool)
}

// Browser runs one browse request end to end: resolve the endpoint, open a
// session, navigate, list, normalize, sort. A fresh session is opened per
// request and closed before returning; nothing is shared across requests.
type Browser struct {
	store      EndpointStore
	timeout    time.Duration
	logger     *zap.Logger
	newSession func(ep config.Endpoint) (protocols.Session, error)
}

func NewBrowser(store EndpointStore, timeout time.Duration, logger *zap.Logger) *Browser {
	b := &Browser{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
	b.newSession = func(ep config.Endpoint) (protocols.Session, error) {
		return protocols.NewSession(ep, b.timeout, b.logger)
	}
	return b
}

// Browse returns either a Listing or a *BrowseError; no other error type
// crosses this boundary. Only an unknown endpoint or a failed connection is
// terminal. A navigation failure falls back to root, a listing failure is
// reported inside the Listing, and both leave the caller with enough
// context to keep browsing.
func (b *Browser) Browse(endpointID, path string) (*Listing, error) {
	ep, ok := b.store.Find(endpointID)
	if !ok {
		browseRequestsTotal.WithLabelValues("unknown", statusEndpointNotFound).Inc()
		return nil, &BrowseError{
			Kind:       KindEndpointNotFound,
			Message:    fmt.Sprintf("no endpoint with id %q", endpointID),
			EndpointID: endpointID,
		}
	}

	start := time.Now()
	defer func() {
		browseDuration.WithLabelValues(ep.Protocol).Observe(time.Since(start).Seconds())
	}()

	sess, err := b.newSession(ep)
	if err == nil {
		err = sess.Connect()
	}
	if err != nil {
		browseRequestsTotal.WithLabelValues(ep.Protocol, statusConnectionFailed).Inc()
		return nil, &BrowseError{
			Kind:         KindConnectionFailed,
			Message:      err.Error(),
			EndpointID:   ep.ID,
			EndpointName: ep.Name,
		}
	}
	defer sess.Disconnect()

	if path != "" {
		if err := sess.ChangeDirectory(path); err != nil {
			b.logger.Warn("change directory failed, falling back to root",
				zap.String("endpoint", ep.Name),
				zap.String("path", path),
				zap.Error(err))
			// A failed fallback is tolerated; the listing below reports
			// whatever path the session ended up on.
			_ = sess.ChangeDirectory("")
		}
	}

	listing := &Listing{
		EndpointID:   ep.ID,
		EndpointName: ep.Name,
		Protocol:     sess.Kind().Label(),
		CurrentPath:  sess.CurrentPath(),
	}

	status := statusOK
	raw, err := sess.ListFiles()
	if err != nil {
		b.logger.Warn("listing failed",
			zap.String("endpoint", ep.Name),
			zap.String("path", listing.CurrentPath),
			zap.Error(err))
		listing.ListingError = err.Error()
		status = statusListingFailed
	}

	entries := make([]FileEntry, 0, len(raw))
	for _, r := range raw {
		if entry, keep := Normalize(r); keep {
			entries = append(entries, entry)
		}
	}
	SortEntries(entries)
	listing.Entries = entries
	listing.EntryCount = len(entries)
	if parent, hasParent := ParentOf(listing.CurrentPath); hasParent {
		listing.ParentPath = parent
	}

	browseRequestsTotal.WithLabelValues(ep.Protocol, status).Inc()
	return listing, nil
}
