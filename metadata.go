package fat32

import "time"

// Metadata carries the attributes, timestamps, and size decoded from a
// directory entry.
type Metadata struct {
	Attributes FileAttributes
	Size       uint32

	created  time.Time
	modified time.Time
	accessed time.Time
}

// Created returns the creation timestamp.
func (m Metadata) Created() time.Time { return m.created }

// Modified returns the last-modified timestamp.
func (m Metadata) Modified() time.Time { return m.modified }

// Accessed returns the last-access timestamp (FAT32 stores only the date,
// so the time-of-day component is always midnight).
func (m Metadata) Accessed() time.Time { return m.accessed }

// dateTime combines a packed date and time into a time.Time in UTC. FAT32
// does not record a timezone offset.
func dateTime(d Date, t Time) time.Time {
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func metadataFromShortEntry(e shortDirEntry) Metadata {
	return Metadata{
		Attributes: e.Attributes,
		Size:       e.Size,
		created:    dateTime(e.CreateDate, e.CreateTime),
		modified:   dateTime(e.ModifyDate, e.ModifyTime),
		accessed:   dateTime(e.AccessDate, 0),
	}
}
