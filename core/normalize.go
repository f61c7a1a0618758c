package core

import (
	"time"

	"remotebrowse/protocols"
)

const modeDirBit = 0040000

var rwxTable = [8]string{"---", "--x", "-w-", "-wx", "r--", "r-x", "rw-", "rwx"}

// Normalize converts one raw listing record into a FileEntry. The second
// return is false for records that must not appear in a listing: empty
// names and the "." / ".." pseudo-entries.
//
// FTP servers frequently expose nothing beyond the name; those entries keep
// every other field at its default. That gap is part of the protocol, not
// something to paper over here.
func Normalize(raw protocols.RawEntry) (FileEntry, bool) {
	name := raw.EntryName()
	if name == "" || name == "." || name == ".." {
		return FileEntry{}, false
	}

	entry := FileEntry{Name: name}
	switch r := raw.(type) {
	case protocols.SFTPEntry:
		entry.Size = r.Size
		entry.IsDir = r.Mode&modeDirBit != 0
		entry.Permissions = permString(r.Mode)
		entry.ModifiedAt = formatMTime(r.MTime)
	case protocols.FTPEntry:
		if r.HasFacts {
			entry.Size = r.Size
			entry.IsDir = r.Dir
		}
	}
	entry.SizeHuman = FormatSize(entry.Size)
	return entry, true
}

// permString renders a POSIX mode as the usual 10-character listing form,
// "drwxr-xr-x" and friends.
func permString(mode uint32) string {
	s := "-"
	if mode&modeDirBit != 0 {
		s = "d"
	}
	s += rwxTable[(mode>>6)&7]
	s += rwxTable[(mode>>3)&7]
	s += rwxTable[mode&7]
	return s
}

func formatMTime(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}
