package store

import (
	"strings"
	"testing"

	"github.com/reefdb/reefdb-go/pkg/values"
)

func TestClassAndDocumentLifecycle(t *testing.T) {
	s := New()

	t.Run("create class", func(t *testing.T) {
		ref, err := s.CreateClass("frogs")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if ref.ID != "frogs" || ref.Class != values.NativeClasses {
			t.Errorf("unexpected class ref: %v", ref)
		}
	})

	t.Run("duplicate class", func(t *testing.T) {
		if _, err := s.CreateClass("frogs"); err == nil {
			t.Error("expected an error for a duplicate class")
		}
	})

	t.Run("empty class name", func(t *testing.T) {
		if _, err := s.CreateClass(""); err == nil {
			t.Error("expected an error for an empty class name")
		}
	})

	var docID string
	t.Run("create document", func(t *testing.T) {
		doc, err := s.Create("frogs", values.ObjectV{"color": values.StringV("green")})
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if doc.Ref.ID == "" || doc.Ref.Class.ID != "frogs" {
			t.Errorf("unexpected document ref: %v", doc.Ref)
		}
		if doc.TS == 0 {
			t.Error("expected a creation timestamp")
		}
		docID = doc.Ref.ID
	})

	t.Run("get document", func(t *testing.T) {
		doc, err := s.Get("frogs", docID)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if doc.Data["color"] != values.StringV("green") {
			t.Errorf("unexpected document data: %v", doc.Data)
		}
	})

	t.Run("update merges fields", func(t *testing.T) {
		doc, err := s.Update("frogs", docID, values.ObjectV{"size": values.LongV(3)})
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if doc.Data["color"] != values.StringV("green") || doc.Data["size"] != values.LongV(3) {
			t.Errorf("unexpected merged data: %v", doc.Data)
		}
	})

	t.Run("delete document", func(t *testing.T) {
		if _, err := s.Delete("frogs", docID); err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if _, err := s.Get("frogs", docID); err == nil {
			t.Error("expected an error for a deleted document")
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		if _, err := s.Create("newts", values.ObjectV{}); err == nil {
			t.Error("expected an error for an unknown class")
		}
	})
}

func TestIndexesAndMatch(t *testing.T) {
	s := New()
	if _, err := s.CreateClass("frogs"); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if _, err := s.CreateIndex("all_frogs", "frogs", ""); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if _, err := s.CreateIndex("frogs_by_color", "frogs", "color"); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	green1, _ := s.Create("frogs", values.ObjectV{"color": values.StringV("green")})
	green2, _ := s.Create("frogs", values.ObjectV{"color": values.StringV("green")})
	if _, err := s.Create("frogs", values.ObjectV{"color": values.StringV("brown")}); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}

	t.Run("class cover index matches everything", func(t *testing.T) {
		refs, err := s.Match("all_frogs", nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(refs) != 3 {
			t.Errorf("expected 3 refs, got %d", len(refs))
		}
	})

	t.Run("term index narrows by field value", func(t *testing.T) {
		refs, err := s.Match("frogs_by_color", values.StringV("green"))
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(refs) != 2 {
			t.Fatalf("expected 2 refs, got %d", len(refs))
		}
		got := map[string]bool{refs[0].ID: true, refs[1].ID: true}
		if !got[green1.Ref.ID] || !got[green2.Ref.ID] {
			t.Errorf("unexpected matches: %v", refs)
		}
	})

	t.Run("matches come back ordered", func(t *testing.T) {
		refs, err := s.Match("all_frogs", nil)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		for i := 1; i < len(refs); i++ {
			if strings.Compare(refs[i-1].ID, refs[i].ID) > 0 {
				t.Fatalf("refs out of order: %v", refs)
			}
		}
	})

	t.Run("index over unknown class", func(t *testing.T) {
		if _, err := s.CreateIndex("bad", "newts", ""); err == nil {
			t.Error("expected an error for an unknown source class")
		}
	})

	t.Run("unknown index", func(t *testing.T) {
		if _, err := s.Match("nope", nil); err == nil {
			t.Error("expected an error for an unknown index")
		}
	})

	t.Run("listings are sorted", func(t *testing.T) {
		idx := s.Indexes()
		if len(idx) != 2 || idx[0].ID != "all_frogs" || idx[1].ID != "frogs_by_color" {
			t.Errorf("unexpected index listing: %v", idx)
		}
		classes := s.Classes()
		if len(classes) != 1 || classes[0].ID != "frogs" {
			t.Errorf("unexpected class listing: %v", classes)
		}
	})
}

func TestPageRefs(t *testing.T) {
	refs := make([]*values.RefV, 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		refs[i] = &values.RefV{ID: id}
	}

	t.Run("first page carries only an after cursor", func(t *testing.T) {
		page, err := PageRefs(refs, 2, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(page.Data) != 2 || page.Data[0].ID != "a" || page.Data[1].ID != "b" {
			t.Errorf("unexpected page: %v", page.Data)
		}
		if page.Before != "" {
			t.Error("first page must not have a before cursor")
		}
		if page.After == "" {
			t.Error("expected an after cursor")
		}
	})

	t.Run("forward walk covers everything exactly once", func(t *testing.T) {
		var seen []string
		after := ""
		for {
			page, err := PageRefs(refs, 2, after, "")
			if err != nil {
				t.Fatalf("unexpected error: %s", err.Error())
			}
			for _, r := range page.Data {
				seen = append(seen, r.ID)
			}
			if page.After == "" {
				break
			}
			after = page.After
		}
		if strings.Join(seen, "") != "abcde" {
			t.Errorf("unexpected walk: %v", seen)
		}
	})

	t.Run("backward page ends at the before boundary", func(t *testing.T) {
		first, err := PageRefs(refs, 2, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		second, err := PageRefs(refs, 2, first.After, "")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		back, err := PageRefs(refs, 2, "", second.Before)
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(back.Data) != 2 || back.Data[0].ID != "a" || back.Data[1].ID != "b" {
			t.Errorf("unexpected backward page: %v", back.Data)
		}
	})

	t.Run("size defaults when unset", func(t *testing.T) {
		page, err := PageRefs(refs, 0, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %s", err.Error())
		}
		if len(page.Data) != 5 || page.After != "" {
			t.Errorf("expected one full page, got %d refs", len(page.Data))
		}
	})

	t.Run("malformed cursor", func(t *testing.T) {
		if _, err := PageRefs(refs, 2, "%%%", ""); err == nil {
			t.Error("expected an error for a malformed cursor")
		}
	})
}
