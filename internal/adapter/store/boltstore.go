package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.etcd.io/bbolt"

	"localsearch/internal/domain"
)

var (
	// ErrNoIndex means no snapshot has ever been saved at the store path.
	ErrNoIndex = errors.New("no index available")
	// ErrSchemaMismatch means the stored snapshot was written by a different
	// schema version. The caller falls back to "no index" and rebuilds.
	ErrSchemaMismatch = errors.New("index schema mismatch")
	// ErrCorrupt means the stored snapshot failed structural validation.
	ErrCorrupt = errors.New("index file corrupt")
	// ErrLocked means another process is writing the index right now.
	ErrLocked = errors.New("index locked by another process")
)

var (
	bucketMeta     = []byte("meta")
	bucketDocs     = []byte("docs")
	bucketPostings = []byte("postings")
	keySchema      = []byte("schema_version")
	keyStats       = []byte("stats")
)

// BoltStore persists snapshots to a single bbolt file. Save writes a complete
// temporary database and renames it over the live path, so a crash mid-write
// leaves the previous snapshot intact. A flock file serializes writers from
// separate processes.
type BoltStore struct {
	path string
}

// NewBoltStore creates a store rooted at path. The parent directory is
// created on demand.
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

// Path returns the fixed location of the persisted index.
func (s *BoltStore) Path() string {
	return s.path
}

// Save persists snapshot atomically. The previous file stays valid until the
// final rename.
func (s *BoltStore) Save(snapshot *domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire index lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer lock.Unlock()

	tmp := s.path + ".tmp"
	os.Remove(tmp)

	db, err := bbolt.Open(tmp, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to create temporary index: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucket(bucketMeta)
		if err != nil {
			return err
		}
		docs, err := tx.CreateBucket(bucketDocs)
		if err != nil {
			return err
		}
		postings, err := tx.CreateBucket(bucketPostings)
		if err != nil {
			return err
		}

		version, err := json.Marshal(domain.SchemaVersion)
		if err != nil {
			return err
		}
		if err := meta.Put(keySchema, version); err != nil {
			return err
		}
		stats, err := json.Marshal(snapshot.Stats)
		if err != nil {
			return err
		}
		if err := meta.Put(keyStats, stats); err != nil {
			return err
		}

		for id, doc := range snapshot.Docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := docs.Put(docKey(id), data); err != nil {
				return err
			}
		}

		for term, list := range snapshot.Index {
			data, err := json.Marshal(list)
			if err != nil {
				return err
			}
			if err := postings.Put([]byte(term), data); err != nil {
				return err
			}
		}

		return nil
	})
	if cerr := db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write index: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// Load reads and validates the persisted snapshot. It returns ErrNoIndex when
// nothing was ever saved, ErrSchemaMismatch for a version written by another
// build, and ErrCorrupt when structural validation fails. All three are
// recoverable by rebuilding.
func (s *BoltStore) Load() (*domain.Snapshot, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoIndex
		}
		return nil, err
	}

	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer db.Close()

	snapshot := &domain.Snapshot{Index: make(map[string][]domain.Posting)}

	err = db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		docs := tx.Bucket(bucketDocs)
		postings := tx.Bucket(bucketPostings)
		if meta == nil || docs == nil || postings == nil {
			return fmt.Errorf("%w: missing bucket", ErrCorrupt)
		}

		versionData := meta.Get(keySchema)
		if versionData == nil {
			return fmt.Errorf("%w: no schema version", ErrSchemaMismatch)
		}
		var version int
		if err := json.Unmarshal(versionData, &version); err != nil {
			return fmt.Errorf("%w: unreadable schema version", ErrSchemaMismatch)
		}
		if version != domain.SchemaVersion {
			return fmt.Errorf("%w: stored v%d, expected v%d", ErrSchemaMismatch, version, domain.SchemaVersion)
		}

		statsData := meta.Get(keyStats)
		if statsData == nil {
			return fmt.Errorf("%w: missing corpus stats", ErrCorrupt)
		}
		if err := json.Unmarshal(statsData, &snapshot.Stats); err != nil {
			return fmt.Errorf("%w: unreadable corpus stats", ErrCorrupt)
		}

		next := 0
		err := docs.ForEach(func(k, v []byte) error {
			if len(k) != 8 || int(binary.BigEndian.Uint64(k)) != next {
				return fmt.Errorf("%w: non-contiguous document ids", ErrCorrupt)
			}
			var doc domain.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("%w: unreadable document %d", ErrCorrupt, next)
			}
			snapshot.Docs = append(snapshot.Docs, doc)
			next++
			return nil
		})
		if err != nil {
			return err
		}

		return postings.ForEach(func(k, v []byte) error {
			var list []domain.Posting
			if err := json.Unmarshal(v, &list); err != nil {
				return fmt.Errorf("%w: unreadable postings for %q", ErrCorrupt, k)
			}
			snapshot.Index[string(k)] = list
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := validate(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// validate cross-checks the loaded snapshot against its own invariants before
// anything acts on it.
func validate(s *domain.Snapshot) error {
	n := len(s.Docs)
	if s.Stats.TotalDocs != n {
		return fmt.Errorf("%w: stats claim %d documents, found %d", ErrCorrupt, s.Stats.TotalDocs, n)
	}
	if s.Stats.VocabSize != len(s.Index) {
		return fmt.Errorf("%w: stats claim vocabulary %d, found %d", ErrCorrupt, s.Stats.VocabSize, len(s.Index))
	}

	for i, doc := range s.Docs {
		if i > 0 && s.Docs[i-1].Path >= doc.Path {
			return fmt.Errorf("%w: document paths not sorted and unique", ErrCorrupt)
		}
		total := 0
		for term, count := range doc.Terms {
			if count < 1 {
				return fmt.Errorf("%w: zero term count for %q in %s", ErrCorrupt, term, doc.Path)
			}
			total += count
		}
		if total != doc.Length {
			return fmt.Errorf("%w: document length mismatch for %s", ErrCorrupt, doc.Path)
		}
	}

	for term, list := range s.Index {
		if len(list) == 0 || len(list) > n {
			return fmt.Errorf("%w: df out of range for %q", ErrCorrupt, term)
		}
		prev := -1
		for _, p := range list {
			if p.DocID <= prev || p.DocID >= n {
				return fmt.Errorf("%w: bad posting order for %q", ErrCorrupt, term)
			}
			prev = p.DocID
			if s.Docs[p.DocID].Terms[term] != p.TF {
				return fmt.Errorf("%w: posting disagrees with document %s on %q", ErrCorrupt, s.Docs[p.DocID].Path, term)
			}
		}
	}

	// Recompute df from the documents table: each term's posting count must
	// equal the number of documents carrying it.
	df := make(map[string]int)
	for _, doc := range s.Docs {
		for term := range doc.Terms {
			df[term]++
		}
	}
	if len(df) != len(s.Index) {
		return fmt.Errorf("%w: vocabulary disagrees between documents and inverted index", ErrCorrupt)
	}
	for term, count := range df {
		if len(s.Index[term]) != count {
			return fmt.Errorf("%w: df mismatch for %q", ErrCorrupt, term)
		}
	}

	return nil
}

func docKey(id int) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(id))
	return k[:]
}
