// Package filemgr resolves textual paths to canonical DirectoryEntry and
// FileEntry records, deduplicating across hard links and symlinks by
// (device, inode) the way spec §4.1 requires (scenario 6: two paths
// naming the same inode must resolve to the same *FileEntry and the
// same UID).
//
// Grounded on the original FileManager.h/.cpp: the path-splitting logic
// in getFile (strip the last '/', collapse duplicate slashes, "." for a
// bare filename) and the UID-minting scheme come straight from there.
// The original's FileEntries map is keyed by path string only and never
// actually dedups by inode; spec §4.1 requires the dedup, so this
// package keys the canonical table by (device, inode) and keeps a
// path->entry cache on top for the common "no stat needed" case.
package filemgr

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/standardbeagle/cptoyc/internal/debug"
)

// DirectoryEntry is cached information about one directory, uniqued by
// (device, inode).
type DirectoryEntry struct {
	Name string
}

// DeviceInode identifies a file or directory independent of the path
// used to reach it.
type DeviceInode struct {
	Device uint64
	Inode  uint64
}

// FileEntry is cached information about one file, uniqued by
// (device, inode) so symlinked/hardlinked paths to the same file
// resolve to the identical *FileEntry and share its UID.
type FileEntry struct {
	Name    string // the path first used to resolve this entry
	Size    int64
	ModTime int64
	Dir     *DirectoryEntry
	UID     uint32
	Device  uint64
	Inode   uint64
	Mode    os.FileMode
}

// lookupState is the three-valued outcome spec §4.1/§9 requires: a path
// can be "never looked up" (absent from the map entirely), "looked up,
// does not exist" (Missing), or "looked up, exists" (Present).
type lookupState int

const (
	statMissing lookupState = iota
	statPresent
)

type dirCacheEntry struct {
	state lookupState
	entry *DirectoryEntry
}

type fileCacheEntry struct {
	state lookupState
	entry *FileEntry
}

// StatResult is what a StatCache reports for one path: either the
// resolved stat fields, or ok==false meaning the path doesn't exist (or
// stat failed).
type StatResult struct {
	Device uint64
	Inode  uint64
	Size   int64
	Mode   os.FileMode
	ModTime int64
}

// StatCache is the capability trait spec §4.1/§9 describes: an optional
// interceptor layered in front of the OS stat syscall, used to replay
// recorded results (e.g. for a pre-tokenized-header-adjacent flow).
type StatCache interface {
	Stat(path string) (StatResult, bool)
}

// Manager deduplicates directory/file entries by (device, inode) and
// caches stat results.
type Manager struct {
	dirByPath  map[string]*dirCacheEntry
	fileByPath map[string]*fileCacheEntry

	uniqueDirs  map[DeviceInode]*DirectoryEntry
	uniqueFiles map[DeviceInode]*FileEntry

	nextFileUID uint32
	statCache   StatCache

	dirLookups      atomic.Uint64
	fileLookups     atomic.Uint64
	dirCacheMisses  atomic.Uint64
	fileCacheMisses atomic.Uint64
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{
		dirByPath:   make(map[string]*dirCacheEntry),
		fileByPath:  make(map[string]*fileCacheEntry),
		uniqueDirs:  make(map[DeviceInode]*DirectoryEntry),
		uniqueFiles: make(map[DeviceInode]*FileEntry),
	}
}

// SetStatCache installs an interceptor consulted before the OS stat
// syscall. Pass nil to remove it.
func (m *Manager) SetStatCache(cache StatCache) {
	m.statCache = cache
}

// GetDirectory stats dirname, returning the cached DirectoryEntry keyed
// by (device, inode). Returns (nil, false) if the directory doesn't
// exist or the path isn't a directory. Consecutive lookups of the same
// path perform at most one stat.
func (m *Manager) GetDirectory(dirname string) (*DirectoryEntry, bool) {
	m.dirLookups.Add(1)

	if cached, ok := m.dirByPath[dirname]; ok {
		return cached.entry, cached.state == statPresent
	}

	m.dirCacheMisses.Add(1)

	result, ok := m.stat(dirname)
	if !ok || !result.Mode.IsDir() {
		m.dirByPath[dirname] = &dirCacheEntry{state: statMissing}
		return nil, false
	}

	key := DeviceInode{Device: result.Device, Inode: result.Inode}
	entry, exists := m.uniqueDirs[key]
	if !exists {
		entry = &DirectoryEntry{Name: dirname}
		m.uniqueDirs[key] = entry
	}

	m.dirByPath[dirname] = &dirCacheEntry{state: statPresent, entry: entry}
	return entry, true
}

// GetFile stats filename, splitting off its directory component the way
// the original getFile does (strip trailing slashes' owner, collapse
// duplicate slashes, "." for a bare name), then returns the cached
// FileEntry keyed by (device, inode). A path ending in "/" yields
// (nil, false), matching spec §4.1.
func (m *Manager) GetFile(filename string) (*FileEntry, bool) {
	m.fileLookups.Add(1)

	if cached, ok := m.fileByPath[filename]; ok {
		return cached.entry, cached.state == statPresent
	}

	m.fileCacheMisses.Add(1)

	if strings.HasSuffix(filename, "/") {
		m.fileByPath[filename] = &fileCacheEntry{state: statMissing}
		return nil, false
	}

	dirPart := splitDirectory(filename)
	dir, ok := m.GetDirectory(dirPart)
	if !ok {
		m.fileByPath[filename] = &fileCacheEntry{state: statMissing}
		return nil, false
	}

	result, ok := m.stat(filename)
	if !ok || result.Mode.IsDir() {
		m.fileByPath[filename] = &fileCacheEntry{state: statMissing}
		return nil, false
	}

	key := DeviceInode{Device: result.Device, Inode: result.Inode}
	entry, exists := m.uniqueFiles[key]
	if !exists {
		entry = &FileEntry{
			Name:    filename,
			Size:    result.Size,
			ModTime: result.ModTime,
			Dir:     dir,
			UID:     m.nextFileUID,
			Device:  result.Device,
			Inode:   result.Inode,
			Mode:    result.Mode,
		}
		m.nextFileUID++
		m.uniqueFiles[key] = entry
		debug.LogFile("new file entry uid=%d path=%s", entry.UID, filename)
	}

	m.fileByPath[filename] = &fileCacheEntry{state: statPresent, entry: entry}
	return entry, true
}

// splitDirectory mirrors the original's slash-scanning logic: find the
// last '/', collapse duplicate slashes before it, and fall back to "."
// for a bare filename with no directory component.
func splitDirectory(filename string) string {
	slash := strings.LastIndexByte(filename, '/')
	if slash < 0 {
		return "."
	}
	end := slash
	for end > 0 && filename[end-1] == '/' {
		end--
	}
	if end == 0 {
		return "/"
	}
	return filename[:end]
}

// stat consults the installed StatCache first (if any), falling back to
// the OS whenever the cache holds no result for path. Which results a
// cache keeps is the cache's own policy; see MemorizeStatCache.Record.
func (m *Manager) stat(path string) (StatResult, bool) {
	if m.statCache != nil {
		if result, ok := m.statCache.Stat(path); ok {
			return result, true
		}
	}
	return osStat(path)
}

// MemorizeStatCache is a StatCache that replays a fixed set of stat
// results instead of touching the OS, per spec §9's "dynamic dispatch
// for stat interception" design note.
type MemorizeStatCache struct {
	results map[string]StatResult
}

// NewMemorizeStatCache creates an empty interceptor.
func NewMemorizeStatCache() *MemorizeStatCache {
	return &MemorizeStatCache{results: make(map[string]StatResult)}
}

// Record stores the result that Stat should return for path. A
// regular-file result is always kept; any other result (such as a
// directory) is kept only when path is absolute. ok=false removes any
// stored result for path: a failed stat is not remembered, so a later
// lookup of path falls through to the OS.
func (c *MemorizeStatCache) Record(path string, result StatResult, ok bool) {
	if !ok {
		delete(c.results, path)
		return
	}
	if filepath.IsAbs(path) || result.Mode.IsRegular() {
		c.results[path] = result
	}
}

// Stat implements StatCache.
func (c *MemorizeStatCache) Stat(path string) (StatResult, bool) {
	result, ok := c.results[path]
	return result, ok
}

// Stats reports the lookup/cache-miss counters spec §4.1 names for
// PrintStats (here exposed as a struct rather than a print routine,
// since formatting is a collaborator concern).
type Stats struct {
	DirLookups      uint64
	FileLookups     uint64
	DirCacheMisses  uint64
	FileCacheMisses uint64
}

// Stats returns a snapshot of the manager's lookup counters.
func (m *Manager) Stats() Stats {
	return Stats{
		DirLookups:      m.dirLookups.Load(),
		FileLookups:     m.fileLookups.Load(),
		DirCacheMisses:  m.dirCacheMisses.Load(),
		FileCacheMisses: m.fileCacheMisses.Load(),
	}
}
