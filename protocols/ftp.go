package protocols

import (
	"fmt"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"

	"remotebrowse/config"
)

type FTPSession struct {
	endpoint config.Endpoint
	timeout  time.Duration
	logger   *zap.Logger
	conn     *ftp.ServerConn
	current  string
}

func NewFTPSession(ep config.Endpoint, timeout time.Duration, logger *zap.Logger) *FTPSession {
	return &FTPSession{
		endpoint: ep,
		timeout:  timeout,
		logger:   logger,
		current:  "/",
	}
}

func (f *FTPSession) Kind() ProtocolKind { return KindFTP }

func (f *FTPSession) Connect() error {
	addr := fmt.Sprintf("%s:%d", f.endpoint.Host, f.endpoint.Port)
	c, err := ftp.Dial(addr, ftp.DialWithTimeout(f.timeout))
	if err != nil {
		f.logger.Error("ftp dial failed",
			zap.String("endpoint", f.endpoint.Name),
			zap.String("addr", addr),
			zap.Error(err))
		return err
	}

	if err := c.Login(f.endpoint.User, f.endpoint.Password); err != nil {
		c.Quit()
		f.logger.Error("ftp login failed",
			zap.String("endpoint", f.endpoint.Name),
			zap.String("user", f.endpoint.User),
			zap.Error(err))
		return err
	}
	f.conn = c
	f.logger.Info("ftp connected",
		zap.String("endpoint", f.endpoint.Name),
		zap.String("addr", addr))
	return nil
}

func (f *FTPSession) ChangeDirectory(path string) error {
	if path == "" {
		path = "/"
	}
	if err := f.conn.ChangeDir(path); err != nil {
		return err
	}
	f.current = path
	return nil
}

func (f *FTPSession) CurrentPath() string {
	return f.current
}

func (f *FTPSession) ListFiles() ([]RawEntry, error) {
	entries, err := f.conn.List(f.current)
	if err == nil {
		raw := make([]RawEntry, 0, len(entries))
		for _, entry := range entries {
			raw = append(raw, FTPEntry{
				Name:     entry.Name,
				Size:     int64(entry.Size),
				Dir:      entry.Type == ftp.EntryTypeFolder,
				HasFacts: true,
			})
		}
		return raw, nil
	}

	// Some servers emit LIST output the client cannot parse; NLST still
	// yields the bare names, just without any metadata.
	names, nerr := f.conn.NameList(f.current)
	if nerr != nil {
		return nil, err
	}
	raw := make([]RawEntry, 0, len(names))
	for _, name := range names {
		raw = append(raw, FTPEntry{Name: name})
	}
	return raw, nil
}

func (f *FTPSession) Disconnect() {
	if f.conn != nil {
		f.conn.Quit()
		f.conn = nil
	}
}
