package protocols

import (
	"fmt"
	"time"

	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"remotebrowse/config"
)

type SFTPSession struct {
	endpoint config.Endpoint
	timeout  time.Duration
	logger   *zap.Logger
	client   *sftp.Client
	sshConn  *ssh.Client
	current  string
}

func NewSFTPSession(ep config.Endpoint, timeout time.Duration, logger *zap.Logger) *SFTPSession {
	return &SFTPSession{
		endpoint: ep,
		timeout:  timeout,
		logger:   logger,
		current:  "/",
	}
}

func (s *SFTPSession) Kind() ProtocolKind { return KindSFTP }

func (s *SFTPSession) Connect() error {
	cfg := &ssh.ClientConfig{
		User: s.endpoint.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(s.endpoint.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         s.timeout,
	}

	addr := fmt.Sprintf("%s:%d", s.endpoint.Host, s.endpoint.Port)
	conn, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		s.logger.Error("ssh dial failed",
			zap.String("endpoint", s.endpoint.Name),
			zap.String("addr", addr),
			zap.Error(err))
		return err
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		s.logger.Error("sftp subsystem failed",
			zap.String("endpoint", s.endpoint.Name),
			zap.Error(err))
		return err
	}
	s.sshConn = conn
	s.client = client
	s.logger.Info("sftp connected",
		zap.String("endpoint", s.endpoint.Name),
		zap.String("addr", addr))
	return nil
}

// ChangeDirectory has no wire counterpart in SFTP; the session keeps the
// current path itself and only accepts targets that stat as directories.
func (s *SFTPSession) ChangeDirectory(path string) error {
	if path == "" {
		path = "/"
	}
	info, err := s.client.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	s.current = path
	return nil
}

func (s *SFTPSession) CurrentPath() string {
	return s.current
}

func (s *SFTPSession) ListFiles() ([]RawEntry, error) {
	infos, err := s.client.ReadDir(s.current)
	if err != nil {
		return nil, err
	}

	raw := make([]RawEntry, 0, len(infos))
	for _, info := range infos {
		entry := SFTPEntry{
			Name: info.Name(),
			Size: info.Size(),
		}
		if stat, ok := info.Sys().(*sftp.FileStat); ok {
			entry.Mode = stat.Mode
			entry.MTime = int64(stat.Mtime)
		} else {
			entry.Mode = uint32(info.Mode().Perm())
			if info.IsDir() {
				entry.Mode |= 0040000
			}
			if t := info.ModTime(); !t.IsZero() {
				entry.MTime = t.Unix()
			}
		}
		raw = append(raw, entry)
	}
	return raw, nil
}

func (s *SFTPSession) Disconnect() {
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	if s.sshConn != nil {
		s.sshConn.Close()
		s.sshConn = nil
	}
}
