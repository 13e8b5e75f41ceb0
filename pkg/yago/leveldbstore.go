// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yago

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
)

// levelDBClassDict is the ClassDict implementation: label → nodes,
// case-lowered keys, values sorted delimiter-joined node lists.
type levelDBClassDict struct {
	db     *leveldb.DB
	delims Delimiters
}

func (s *levelDBClassDict) Get(label string) (NodeSet, bool) {
	val, err := s.db.Get([]byte(strings.ToLower(label)), nil)
	if err != nil {
		return NodeSet{}, false
	}
	return NewNodeSet([]string{label}, decodeNodes(val, s.delims.Array)), true
}

// levelDBClassSearch is the ClassSearch implementation: word → nodes,
// intersected across lemmas.
type levelDBClassSearch struct {
	db     *leveldb.DB
	delims Delimiters
}

func (s *levelDBClassSearch) Search(lemmas []string) (NodeSet, bool) {
	if len(lemmas) == 0 {
		return NodeSet{}, false
	}
	var result map[Node]bool
	for _, lemma := range lemmas {
		val, err := s.db.Get([]byte(strings.ToLower(lemma)), nil)
		if err != nil {
			return NodeSet{}, false
		}
		nodes := decodeNodes(val, s.delims.Array)
		set := nodeSet(nodes)
		if result == nil {
			result = set
			continue
		}
		for n := range result {
			if !set[n] {
				delete(result, n)
			}
		}
	}
	if len(result) == 0 {
		return NodeSet{}, false
	}
	nodes := make([]Node, 0, len(result))
	for n := range result {
		nodes = append(nodes, n)
	}
	return NewNodeSet(lemmas, nodes), true
}

// levelDBTaxonomy is the Taxonomy implementation. Values may record
// several parents; Parent returns only the first, per storage order
// (spec.md §3, §9 open question — reproduced as specified).
type levelDBTaxonomy struct {
	db     *leveldb.DB
	delims Delimiters
}

func (s *levelDBTaxonomy) Parent(n Node) (Node, bool) {
	val, err := s.db.Get([]byte(n), nil)
	if err != nil {
		return "", false
	}
	parts := strings.Split(string(val), string([]byte{s.delims.Array}))
	if len(parts) == 0 || parts[0] == "" {
		return "", false
	}
	return Node(parts[0]), true
}

// levelDBTypes is the Types implementation: instance → its direct classes.
type levelDBTypes struct {
	db     *leveldb.DB
	delims Delimiters
}

func (s *levelDBTypes) TypesOf(instance Node) []Node {
	val, err := s.db.Get([]byte(instance), nil)
	if err != nil {
		return nil
	}
	return decodeNodes(val, s.delims.Array)
}

func decodeNodes(val []byte, delim byte) []Node {
	if len(val) == 0 {
		return nil
	}
	parts := strings.Split(string(val), string([]byte{delim}))
	out := make([]Node, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, Node(p))
		}
	}
	return out
}

func encodeNodes(nodes []Node, delim byte) []byte {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	strs := make([]string, len(sorted))
	for i, n := range sorted {
		strs[i] = string(n)
	}
	return []byte(strings.Join(strs, string([]byte{delim})))
}

// dbHandles bundles the four goleveldb databases backing a KnowledgeStore,
// so OpenKnowledgeStore can close all of them together.
type dbHandles struct {
	classDict   *leveldb.DB
	classSearch *leveldb.DB
	taxonomy    *leveldb.DB
	types       *leveldb.DB
}

// OpenKnowledgeStore opens the four persistent store directories under
// root (spec.md §6's named directories), returning a read-only
// KnowledgeStore and a close function to release all four handles.
func OpenKnowledgeStore(root string, delims Delimiters) (*KnowledgeStore, func() error, error) {
	open := func(dir string) (*leveldb.DB, error) {
		db, err := leveldb.OpenFile(filepath.Join(root, dir), nil)
		if err != nil {
			return nil, fmt.Errorf("yago: opening %s: %w", dir, err)
		}
		return db, nil
	}

	classDictDB, err := open(ClassDictDir)
	if err != nil {
		return nil, nil, err
	}
	classSearchDB, err := open(ClassSearchDir)
	if err != nil {
		classDictDB.Close()
		return nil, nil, err
	}
	taxonomyDB, err := open(TaxonomyDir)
	if err != nil {
		classDictDB.Close()
		classSearchDB.Close()
		return nil, nil, err
	}
	typesDB, err := open(TypesDir)
	if err != nil {
		classDictDB.Close()
		classSearchDB.Close()
		taxonomyDB.Close()
		return nil, nil, err
	}

	handles := dbHandles{
		classDict:   classDictDB,
		classSearch: classSearchDB,
		taxonomy:    taxonomyDB,
		types:       typesDB,
	}

	store := &KnowledgeStore{
		ClassDict:   &levelDBClassDict{db: handles.classDict, delims: delims},
		ClassSearch: &levelDBClassSearch{db: handles.classSearch, delims: delims},
		Taxonomy:    &levelDBTaxonomy{db: handles.taxonomy, delims: delims},
		Types:       &levelDBTypes{db: handles.types, delims: delims},
	}

	closeFn := func() error {
		var firstErr error
		for _, db := range []*leveldb.DB{handles.classDict, handles.classSearch, handles.taxonomy, handles.types} {
			if err := db.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	return store, closeFn, nil
}
