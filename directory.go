package fat32

import (
	"encoding/binary"
	"reflect"
	"sort"
	"strings"

	"github.com/dsoprea/go-logging"
	"golang.org/x/text/encoding/unicode"
)

// Dir is a directory: a cluster chain whose payload is a contiguous array
// of 32-byte entries.
type Dir struct {
	entryBase
}

func (d *Dir) AsFile() (*File, bool) { return nil, false }
func (d *Dir) AsDir() (*Dir, bool)   { return d, true }

// NewRootDir builds the synthetic root directory entry: it has no name and
// carries no attributes of its own beyond being a directory.
func NewRootDir(shared *Shared) *Dir {
	return &Dir{
		entryBase: entryBase{
			shared:       shared,
			name:         "",
			startCluster: shared.vol.RootDirCluster(),
			metadata:     Metadata{Attributes: AttrDirectory},
		},
	}
}

// Entries reads the entire directory's cluster chain into memory and
// decodes it into a sequence of Entry values. Calling Entries twice on an
// unchanged directory yields equal results: the decode is purely a
// function of the on-disk bytes.
func (d *Dir) Entries() (entries []Entry, err error) {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			if asErr, ok := errRaw.(error); ok == true {
				err = asErr
			} else {
				err = log.Errorf("error not an error: [%s] [%v]", reflect.TypeOf(errRaw).Name(), errRaw)
			}
		}
	}()

	release, err := d.shared.Acquire()
	log.PanicIf(err)
	defer release()

	var raw []byte

	_, err = d.shared.vol.readChain(d.startCluster, &raw, nil)
	log.PanicIf(err)

	entries, err = decodeDirEntries(d.shared, raw)
	log.PanicIf(err)

	return entries, nil
}

// Find performs a case-insensitive lookup of name among this directory's
// entries.
func (d *Dir) Find(name string) (entry Entry, err error) {
	if !isValidUTF8(name) {
		return nil, InvalidInput("name is not valid utf-8")
	}

	entries, err := d.Entries()
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if strings.EqualFold(e.Name(), name) {
			return e, nil
		}
	}

	return nil, NotFound(name)
}

func isValidUTF8(s string) bool {
	return strings.ToValidUTF8(s, "") == s
}

// decodeDirEntries implements the directory iteration algorithm: scan
// forward for the next regular entry, treat everything since the last
// regular entry as its LFN run, reconstruct the name, and build an Entry.
func decodeDirEntries(shared *Shared, raw []byte) ([]Entry, error) {
	var entries []Entry

	var pendingLFN []lfnDirEntry

	for i := 0; i+dirEntrySize <= len(raw); i += dirEntrySize {
		chunk := raw[i : i+dirEntrySize]
		attrs := peekAttributes(chunk)

		if attrs.isLFN() {
			var lfn lfnDirEntry

			if err := unpackStruct(chunk, &lfn); err != nil {
				return nil, err
			}

			if !lfn.isDeleted() {
				pendingLFN = append(pendingLFN, lfn)
			}

			continue
		}

		var short shortDirEntry

		if err := unpackStruct(chunk, &short); err != nil {
			return nil, err
		}

		if short.isEndMarker() {
			break
		}

		if short.isDeleted() {
			pendingLFN = nil
			continue
		}

		name, err := reconstructName(pendingLFN, short)
		if err != nil {
			return nil, err
		}

		pendingLFN = nil

		metadata := metadataFromShortEntry(short)
		entries = append(entries, newEntry(shared, name, short.startCluster(), metadata))
	}

	return entries, nil
}

// reconstructName assembles the long filename from a run of LFN fragments,
// falling back to the 8.3 short name when there is no usable LFN run.
func reconstructName(run []lfnDirEntry, short shortDirEntry) (string, error) {
	if len(run) == 0 {
		return short.shortName()
	}

	sorted := make([]lfnDirEntry, len(run))
	copy(sorted, run)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].sequence() < sorted[j].sequence()
	})

	var units []uint16

	for _, fragment := range sorted {
		units = append(units, fragment.codeUnits()...)
	}

	for i, u := range units {
		if u == 0x0000 {
			units = units[:i]
			break
		}
	}

	name, err := decodeUCS2(units)
	if err != nil {
		return "", err
	}

	if name == "" {
		return short.shortName()
	}

	return name, nil
}

// decodeUCS2 decodes little-endian UCS-2 code units to a Go string,
// substituting the Unicode replacement character for any unpaired
// surrogate, via golang.org/x/text's UTF-16 decoder.
func decodeUCS2(units []uint16) (string, error) {
	raw := make([]byte, len(units)*2)

	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[i*2:], u)
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	out, err := decoder.Bytes(raw)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
