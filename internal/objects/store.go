package objects

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/KostasZigo/gitobj/internal/compress"
	"github.com/KostasZigo/gitobj/internal/constants"
	"github.com/KostasZigo/gitobj/internal/githash"
)

// ObjectStore manages loose objects under <gitDir>/objects.
// Objects never change once written, so concurrent reads need no locking and
// writes go through a temporary file and a rename.
type ObjectStore struct {
	objectsDir       string
	compressionLevel int
	cacheSize        int
	verify           bool
	cache            *lru.Cache[githash.SHA1, Object]
	log              *zap.Logger
}

// StoreOption configures an ObjectStore.
type StoreOption func(*ObjectStore)

// WithCompressionLevel sets the zlib level used by Write (-1..9).
func WithCompressionLevel(level int) StoreOption {
	return func(s *ObjectStore) {
		s.compressionLevel = level
	}
}

// WithCacheSize keeps up to size decoded objects in memory. Zero disables the cache.
func WithCacheSize(size int) StoreOption {
	return func(s *ObjectStore) {
		s.cacheSize = size
	}
}

// WithVerify makes reads check that an object's content hashes to the name
// it was requested by. Off by default: a loose object is addressed by its path.
func WithVerify() StoreOption {
	return func(s *ObjectStore) {
		s.verify = true
	}
}

// WithLogger sets the logger for debug records.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *ObjectStore) {
		s.log = log
	}
}

// NewObjectStore returns a store rooted at gitDir (e.g. ".git").
func NewObjectStore(gitDir string, opts ...StoreOption) *ObjectStore {
	store := &ObjectStore{
		objectsDir:       filepath.Join(gitDir, constants.Objects),
		compressionLevel: compress.DefaultLevel,
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}

	if store.cacheSize > 0 {
		cache, err := lru.New[githash.SHA1, Object](store.cacheSize)
		if err != nil {
			// lru.New fails only for non-positive sizes
			panic(err)
		}
		store.cache = cache
	}

	return store
}

// Path returns the file path of the object: objects/<2 hex>/<38 hex>.
func (s *ObjectStore) Path(hash githash.SHA1) string {
	return filepath.Join(s.objectsDir, hash.DirName(), hash.FileName())
}

// Exists checks if an object exists in storage.
func (s *ObjectStore) Exists(hash githash.SHA1) bool {
	_, err := os.Stat(s.Path(hash))
	return err == nil
}

// Read loads and decodes the object with the given 40-character hex hash.
func (s *ObjectStore) Read(hashHex string) (Object, error) {
	hash, err := parseHash(hashHex)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if obj, ok := s.cache.Get(hash); ok {
			s.log.Debug("object cache hit", zap.Stringer("hash", hash))
			return obj, nil
		}
	}

	data, err := s.readCanonical(hash)
	if err != nil {
		return nil, err
	}

	obj, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", hash, err)
	}

	if s.cache != nil {
		s.cache.Add(hash, obj)
	}
	return obj, nil
}

// ReadRaw returns the type and payload of an object without decoding the payload.
func (s *ObjectStore) ReadRaw(hashHex string) (Type, []byte, error) {
	hash, err := parseHash(hashHex)
	if err != nil {
		return "", nil, err
	}

	data, err := s.readCanonical(hash)
	if err != nil {
		return "", nil, err
	}

	objType, payload, err := splitObject(data)
	if err != nil {
		return "", nil, fmt.Errorf("object %s: %w", hash, err)
	}
	return objType, payload, nil
}

// readCanonical reads and inflates an object file. With WithVerify it also
// checks that the content still hashes to its name.
func (s *ObjectStore) readCanonical(hash githash.SHA1) ([]byte, error) {
	compressedData, err := os.ReadFile(s.Path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read object file %s: %w", ErrIO, hash, err)
	}

	data, err := compress.Inflate(compressedData)
	if err != nil {
		return nil, fmt.Errorf("%w: object %s: %v", ErrInvalidData, hash, err)
	}

	if !s.verify {
		return data, nil
	}
	if actual := githash.Sum(data); actual != hash {
		return nil, fmt.Errorf("%w: hash mismatch: expected %s, got %s", ErrInvalidData, hash, actual)
	}

	return data, nil
}

// Write stores obj and returns its hash. The hash covers the uncompressed
// canonical bytes. Writing an object that already exists is a no-op.
func (s *ObjectStore) Write(obj Object) (githash.SHA1, error) {
	data := Serialize(obj)
	hash := githash.Sum(data)
	objectFile := s.Path(hash)

	// Check if object already exists (content-addressable)
	_, err := os.Stat(objectFile)
	if err == nil {
		s.log.Debug("object with this hash already exists", zap.Stringer("hash", hash))
		return hash, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return githash.SHA1{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	compressedData, err := compress.Deflate(data, s.compressionLevel)
	if err != nil {
		return githash.SHA1{}, fmt.Errorf("%w: failed to compress object: %w", ErrIO, err)
	}

	objectDir := filepath.Dir(objectFile)
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return githash.SHA1{}, fmt.Errorf("%w: failed to create object directory: %w", ErrIO, err)
	}

	if err := writeFileAtomic(objectDir, objectFile, compressedData); err != nil {
		return githash.SHA1{}, fmt.Errorf("%w: failed to write object file: %w", ErrIO, err)
	}

	s.log.Debug("object written",
		zap.Stringer("hash", hash),
		zap.String("type", string(obj.Type())),
		zap.Int("size", len(data)),
		zap.Int("compressed", len(compressedData)))

	if s.cache != nil {
		s.cache.Add(hash, obj)
	}
	return hash, nil
}

// writeFileAtomic writes data to a temporary file in dir and renames it to
// path, so readers never observe a partially written object.
func writeFileAtomic(dir, path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, "tmp_obj_*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), constants.ObjectPerms); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func parseHash(hashHex string) (githash.SHA1, error) {
	hash, err := githash.ParseSHA1(hashHex)
	if err != nil {
		return githash.SHA1{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return hash, nil
}
