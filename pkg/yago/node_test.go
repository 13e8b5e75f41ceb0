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

import "testing"

func TestKind(t *testing.T) {
	for _, tt := range []struct {
		node Node
		want NodeKind
	}{
		{"<wordnet_dog_102084071>", KindWordNetClass},
		{"owl:Thing", KindYagoClass},
		{"<yago_SomeClass>", KindYagoClass},
		{"<wikicategory_Dogs>", KindYagoClass},
		{"Paris_(city)", KindInstance},
	} {
		if got := Kind(tt.node); got != tt.want {
			t.Errorf("Kind(%q) = %v, want %v", tt.node, got, tt.want)
		}
	}
}

func TestIsClassIsInstance(t *testing.T) {
	if !IsClass("<wordnet_dog_102084071>") {
		t.Error("wordnet node should be a class")
	}
	if IsInstance("<wordnet_dog_102084071>") {
		t.Error("wordnet node should not be an instance")
	}
	if !IsInstance("Paris_(city)") {
		t.Error("plain node should be an instance")
	}
	if IsClass("Paris_(city)") {
		t.Error("plain node should not be a class")
	}
}
