package source

// FileSet keeps source files in insertion order, keyed by a caller-chosen
// (usually canonical) path.
type FileSet struct {
	files []*File
	index map[string]int
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]*File, 0),
		index: make(map[string]int),
	}
}

// Add stores f under key. A later Add with the same key replaces the entry in place.
func (fileSet *FileSet) Add(key string, f *File) {
	if i, ok := fileSet.index[key]; ok {
		fileSet.files[i] = f
		return
	}
	fileSet.index[key] = len(fileSet.files)
	fileSet.files = append(fileSet.files, f)
}

// Get returns the file stored under key.
func (fileSet *FileSet) Get(key string) (*File, bool) {
	i, ok := fileSet.index[key]
	if !ok {
		return nil, false
	}
	return fileSet.files[i], true
}

// Has reports whether key was added.
func (fileSet *FileSet) Has(key string) bool {
	_, ok := fileSet.index[key]
	return ok
}

// Files returns the files in insertion order.
// ВАЖНО: не модифицируйте возвращаемый срез.
func (fileSet *FileSet) Files() []*File {
	return fileSet.files
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}
