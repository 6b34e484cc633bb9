package timeline

// FirstElementID is the first element id handed out; lower values are
// reserved for the project and sequence.
const FirstElementID = 4

// FileIDs identifies the file and master clip shared by every cut of a source.
type FileIDs struct {
	FileID       int
	MasterclipID int
}

// Allocator hands out element ids and per-source file ids for one assembly
// pass. It is not safe for concurrent use.
type Allocator struct {
	nextElement int
	nextFile    int
	files       map[string]FileIDs
}

func NewAllocator() *Allocator {
	return &Allocator{
		nextElement: FirstElementID,
		nextFile:    1,
		files:       make(map[string]FileIDs),
	}
}

// NextElementID returns a fresh element id.
func (a *Allocator) NextElementID() int {
	id := a.nextElement
	a.nextElement++
	return id
}

// FileIDsFor returns the ids for source, allocating them on first sight.
// fresh reports whether this call allocated them.
func (a *Allocator) FileIDsFor(source string) (ids FileIDs, fresh bool) {
	if ids, ok := a.files[source]; ok {
		return ids, false
	}
	ids = FileIDs{FileID: a.nextFile, MasterclipID: a.nextFile}
	a.nextFile++
	a.files[source] = ids
	return ids, true
}
