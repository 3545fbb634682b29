// Package storage implements the managed folders of a SHED project and the registry that
// owns them.
//
// A Folder wraps one directory below a root and guarantees the directory exists once the
// Folder is constructed. It saves values in the object format of package codec, reads them
// back, writes and reads plain text files and searches its tree for files by extension.
//
// A Registry maps folder names to Folders. It registers every directory already present
// below its root when constructed, creates folders lazily when a value is saved into an
// unknown folder, and never creates a folder when reading.
//
// Read operations never fail loudly: a missing or unreadable file yields a *ReadError whose
// status is StatusNotFound, so callers branch on StatusOf(err) or errors.Is(err, ErrNotFound).
// Write operations propagate filesystem errors, which classify as StatusIOError.
package storage
