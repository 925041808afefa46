package store

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reefdb/reefdb-go/pkg/values"
)

// Store is the emulator's in-memory database: classes, indexes and documents,
// guarded by one lock. Good enough for local development and driver tests;
// durability is explicitly not the point.
type Store struct {
	mu      sync.Mutex
	classes map[string]*class
	indexes map[string]*index
}

type class struct {
	name string
	docs map[string]*Document
}

type index struct {
	name        string
	sourceClass string
	termField   string
}

// Document is one stored instance with its class-scoped ref.
type Document struct {
	Ref  *values.RefV
	TS   int64
	Data values.ObjectV
}

func New() *Store {
	return &Store{
		classes: map[string]*class{},
		indexes: map[string]*index{},
	}
}

func (s *Store) CreateClass(name string) (*values.RefV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("class name must not be empty")
	}
	if _, exists := s.classes[name]; exists {
		return nil, fmt.Errorf("class %q already exists", name)
	}
	s.classes[name] = &class{name: name, docs: map[string]*Document{}}
	return classRef(name), nil
}

// CreateIndex registers an index over a class. An empty termField makes the
// index cover the whole class.
func (s *Store) CreateIndex(name, sourceClass, termField string) (*values.RefV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("index name must not be empty")
	}
	if _, exists := s.indexes[name]; exists {
		return nil, fmt.Errorf("index %q already exists", name)
	}
	if _, exists := s.classes[sourceClass]; !exists {
		return nil, fmt.Errorf("source class %q not found", sourceClass)
	}
	s.indexes[name] = &index{name: name, sourceClass: sourceClass, termField: termField}
	return &values.RefV{ID: name, Class: values.NativeIndexes}, nil
}

func (s *Store) Create(className string, data values.ObjectV) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.classes[className]
	if !exists {
		return nil, fmt.Errorf("class %q not found", className)
	}
	id := uuid.NewString()
	doc := &Document{
		Ref:  &values.RefV{ID: id, Class: classRef(className)},
		TS:   time.Now().UnixMicro(),
		Data: data,
	}
	c.docs[id] = doc
	return doc, nil
}

func (s *Store) Get(className, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.classes[className]
	if !exists {
		return nil, fmt.Errorf("class %q not found", className)
	}
	doc, exists := c.docs[id]
	if !exists {
		return nil, fmt.Errorf("document %q not found in class %q", id, className)
	}
	return doc, nil
}

func (s *Store) Update(className, id string, data values.ObjectV) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.classes[className]
	if !exists {
		return nil, fmt.Errorf("class %q not found", className)
	}
	doc, exists := c.docs[id]
	if !exists {
		return nil, fmt.Errorf("document %q not found in class %q", id, className)
	}

	merged := make(values.ObjectV, len(doc.Data)+len(data))
	for k, v := range doc.Data {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	updated := &Document{Ref: doc.Ref, TS: time.Now().UnixMicro(), Data: merged}
	c.docs[id] = updated
	return updated, nil
}

func (s *Store) Delete(className, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.classes[className]
	if !exists {
		return nil, fmt.Errorf("class %q not found", className)
	}
	doc, exists := c.docs[id]
	if !exists {
		return nil, fmt.Errorf("document %q not found in class %q", id, className)
	}
	delete(c.docs, id)
	return doc, nil
}

// Classes lists the refs of all classes, ordered by name.
func (s *Store) Classes() []*values.RefV {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)

	refs := make([]*values.RefV, len(names))
	for i, name := range names {
		refs[i] = classRef(name)
	}
	return refs
}

// Indexes lists the refs of all indexes, ordered by name.
func (s *Store) Indexes() []*values.RefV {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.indexes))
	for name := range s.indexes {
		names = append(names, name)
	}
	sort.Strings(names)

	refs := make([]*values.RefV, len(names))
	for i, name := range names {
		refs[i] = &values.RefV{ID: name, Class: values.NativeIndexes}
	}
	return refs
}

// Match returns the refs the index covers for the given term, ordered by id
// so pagination is stable.
func (s *Store) Match(indexName string, term values.Value) ([]*values.RefV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.indexes[indexName]
	if !exists {
		return nil, fmt.Errorf("index %q not found", indexName)
	}
	c := s.classes[idx.sourceClass]

	ids := make([]string, 0, len(c.docs))
	for id, doc := range c.docs {
		if idx.termField != "" {
			if term == nil || !reflect.DeepEqual(doc.Data[idx.termField], term) {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	refs := make([]*values.RefV, len(ids))
	for i, id := range ids {
		refs[i] = c.docs[id].Ref
	}
	return refs, nil
}

// Page slices an ordered ref list into one page. Cursor tokens are opaque to
// clients: they encode the boundary ref id and only this store can mint them.
type Page struct {
	Data   []*values.RefV
	Before string
	After  string
}

func PageRefs(refs []*values.RefV, size int, after, before string) (Page, error) {
	if size <= 0 {
		size = 64
	}

	start := 0
	end := len(refs)
	if after != "" {
		id, err := decodeCursor(after)
		if err != nil {
			return Page{}, err
		}
		start = sort.Search(len(refs), func(i int) bool { return refs[i].ID >= id })
	}
	if before != "" {
		id, err := decodeCursor(before)
		if err != nil {
			return Page{}, err
		}
		end = sort.Search(len(refs), func(i int) bool { return refs[i].ID >= id })
		if end-size > start {
			start = end - size
		}
	}
	if end > start+size {
		end = start + size
	}

	page := Page{Data: refs[start:end]}
	if start > 0 && len(page.Data) > 0 {
		page.Before = encodeCursor(page.Data[0].ID)
	}
	if end < len(refs) {
		page.After = encodeCursor(refs[end].ID)
	}
	return page, nil
}

func encodeCursor(id string) string {
	return base64.URLEncoding.EncodeToString([]byte(id))
}

func decodeCursor(token string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed cursor token")
	}
	return string(raw), nil
}

func classRef(name string) *values.RefV {
	return &values.RefV{ID: name, Class: values.NativeClasses}
}
