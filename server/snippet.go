package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pdbogen/mkelem/types"
	bolt "go.etcd.io/bbolt"
)

var snippetsBucket = []byte("snippets")

type Snippet struct {
	types.Snippet
}

// NewSnippet assigns a fresh id and creation time to a spec and the markup built from it. It is not saved.
func NewSnippet(spec types.Spec, markup string) (*Snippet, error) {
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("generating snippet id: %v", err)
	}
	return &Snippet{types.Snippet{
		Id:      fmt.Sprintf("%x", idBytes),
		Spec:    spec,
		Markup:  markup,
		Created: time.Now().UTC(),
	}}, nil
}

// Load loads a snippet from the given DB. If the snippet does not exist, both snippet and err will be nil.
func Load(db *bolt.DB, id string) (*Snippet, error) {
	snippets, err := LoadMany(db, []string{id})
	if err != nil {
		return nil, err
	}
	if len(snippets) == 0 {
		return nil, nil
	}
	return snippets[0], nil
}

// LoadMany loads whichever of the named snippets exist, in the order given. An error is returned only for DB
// problems; unparseable snippets are treated as nonexistent.
func LoadMany(db *bolt.DB, ids []string) (snippets []*Snippet, err error) {
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(snippetsBucket)
		if bucket == nil {
			return nil
		}
		for _, id := range ids {
			if id == "" {
				continue
			}
			raw := bucket.Get([]byte(id))
			if raw == nil {
				continue
			}
			snippet := &Snippet{}
			if err := json.Unmarshal(raw, snippet); err != nil {
				log.Warningf("DB contained snippet with id %q, but could not parse: %v", id, err)
				continue
			}
			snippets = append(snippets, snippet)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snippets, nil
}

// Since returns every snippet created strictly after since, oldest first.
func Since(db *bolt.DB, since time.Time) (snippets []*Snippet, err error) {
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(snippetsBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			snippet := &Snippet{}
			if err := json.Unmarshal(v, snippet); err != nil {
				log.Warningf("DB contained snippet with id %q, but could not parse: %v", k, err)
				return nil
			}
			if snippet.Created.After(since) {
				snippets = append(snippets, snippet)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(snippets, func(i, j int) bool {
		return snippets[i].Created.Before(snippets[j].Created)
	})
	return snippets, nil
}

func (s *Snippet) Save(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(snippetsBucket)
		if err != nil {
			return fmt.Errorf("error opening snippets bucket: %v", err)
		}

		jsonBytes, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("error marshaling snippet to JSON: %v", err)
		}

		if err := bucket.Put([]byte(s.Id), jsonBytes); err != nil {
			return fmt.Errorf("saving snippet to DB: %v", err)
		}
		return nil
	})
}
