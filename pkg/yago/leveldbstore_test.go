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
	"path/filepath"
	"reflect"
	"testing"

	"github.com/syndtr/goleveldb/leveldb"
)

func openTestDB(t *testing.T, name string) *leveldb.DB {
	t.Helper()
	db, err := leveldb.OpenFile(filepath.Join(t.TempDir(), name), nil)
	if err != nil {
		t.Fatalf("leveldb.OpenFile(%s) error = %v", name, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLevelDBClassDictGet(t *testing.T) {
	db := openTestDB(t, "class_dict")
	delims := DefaultDelimiters()
	if err := db.Put([]byte("new york"), encodeNodes([]Node{"<wikicategory_New_York>"}, delims.Array), nil); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	store := &levelDBClassDict{db: db, delims: delims}

	ns, ok := store.Get("New York")
	if !ok {
		t.Fatal("Get() ok = false, want true (lookup must lowercase the label)")
	}
	want := []Node{"<wikicategory_New_York>"}
	if !reflect.DeepEqual(ns.Nodes, want) {
		t.Errorf("Get() nodes = %v, want %v", ns.Nodes, want)
	}

	if _, ok := store.Get("nonexistent"); ok {
		t.Error("Get() ok = true for a missing label, want false")
	}
}

func TestLevelDBClassSearchIntersects(t *testing.T) {
	db := openTestDB(t, "class_search")
	delims := DefaultDelimiters()
	db.Put([]byte("big"), encodeNodes([]Node{"<wordnet_dog_102084071>", "<wordnet_house_103544360>"}, delims.Array), nil)
	db.Put([]byte("dog"), encodeNodes([]Node{"<wordnet_dog_102084071>"}, delims.Array), nil)

	store := &levelDBClassSearch{db: db, delims: delims}

	ns, ok := store.Search([]string{"big", "dog"})
	if !ok {
		t.Fatal("Search() ok = false, want true")
	}
	want := []Node{"<wordnet_dog_102084071>"}
	if !reflect.DeepEqual(ns.Nodes, want) {
		t.Errorf("Search() nodes = %v, want %v", ns.Nodes, want)
	}

	if _, ok := store.Search([]string{"big", "nonexistent"}); ok {
		t.Error("Search() ok = true when a lemma is missing, want false")
	}
}

func TestLevelDBTaxonomyParentUsesFirstListed(t *testing.T) {
	db := openTestDB(t, "taxonomy")
	delims := DefaultDelimiters()
	db.Put([]byte("<wordnet_dog_102084071>"), encodeNodes([]Node{"<wordnet_carnivore_102075296>", "<wordnet_canine_102083346>"}, delims.Array), nil)

	store := &levelDBTaxonomy{db: db, delims: delims}

	parent, ok := store.Parent("<wordnet_dog_102084071>")
	if !ok || parent != "<wordnet_canine_102083346>" {
		t.Errorf("Parent() = %q, %v, want <wordnet_canine_102083346>, true", parent, ok)
	}

	if _, ok := store.Parent("<wordnet_canine_102083346>"); ok {
		t.Error("Parent() ok = true for a node with no recorded parent, want false")
	}
}

func TestLevelDBTypesOf(t *testing.T) {
	db := openTestDB(t, "types")
	delims := DefaultDelimiters()
	db.Put([]byte("Paris_(city)"), encodeNodes([]Node{"<wordnet_city_108524735>"}, delims.Array), nil)

	store := &levelDBTypes{db: db, delims: delims}

	got := store.TypesOf("Paris_(city)")
	want := []Node{"<wordnet_city_108524735>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TypesOf() = %v, want %v", got, want)
	}

	if got := store.TypesOf("nonexistent"); got != nil {
		t.Errorf("TypesOf() = %v, want nil", got)
	}
}

func TestOpenKnowledgeStoreOpensAllFourDirs(t *testing.T) {
	root := t.TempDir()
	store, closeFn, err := OpenKnowledgeStore(root, DefaultDelimiters())
	if err != nil {
		t.Fatalf("OpenKnowledgeStore() error = %v", err)
	}
	defer closeFn()

	if store.ClassDict == nil || store.ClassSearch == nil || store.Taxonomy == nil || store.Types == nil {
		t.Error("OpenKnowledgeStore() left a sub-store nil")
	}
	for _, dir := range []string{ClassDictDir, ClassSearchDir, TaxonomyDir, TypesDir} {
		if _, err := leveldb.OpenFile(filepath.Join(root, dir), nil); err == nil {
			t.Errorf("directory %s should still be locked by the open store", dir)
		}
	}
}
