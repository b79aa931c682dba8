package resolve

import (
	"testing"

	"nostrcal"
)

func rec(id, author string, kind int, createdAt int64, tags ...nostrcal.Tag) nostrcal.Record {
	return nostrcal.Record{
		ID:        id,
		Author:    author,
		Kind:      kind,
		CreatedAt: createdAt,
		Tags:      tags,
	}
}

func TestResolveLatestWins(t *testing.T) {
	r := New()

	orders := [][]int64{
		{1000, 2000, 3000},
		{3000, 1000, 2000},
		{2000, 3000, 1000},
	}

	for _, order := range orders {
		var records []nostrcal.Record
		for i, ts := range order {
			records = append(records, rec(
				string(rune('a'+i)), "A", nostrcal.KindTimeEvent, ts,
				nostrcal.Tag{"d", "x"},
			))
		}

		out := r.Resolve(records)
		if len(out) != 1 {
			t.Fatalf("order %v: expected 1 entity got %d", order, len(out))
		}
		if out[0].CreatedAt != 3000 {
			t.Fatalf("order %v: expected createdAt 3000 got %d", order, out[0].CreatedAt)
		}
	}
}

func TestResolveEndToEndExample(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("e1", "A", 31922, 1000, nostrcal.Tag{"d", "x"}, nostrcal.Tag{"title", "old"}),
		rec("e2", "A", 31922, 2000, nostrcal.Tag{"d", "x"}, nostrcal.Tag{"title", "new"}),
	}

	out := r.Resolve(records)
	if len(out) != 1 {
		t.Fatalf("expected 1 entity got %d", len(out))
	}
	if out[0].ID != "e2" {
		t.Fatalf("expected id e2 got %s", out[0].ID)
	}
	if out[0].TagValue("title") != "new" {
		t.Fatalf("expected title new got %s", out[0].TagValue("title"))
	}
}

func TestResolveIdempotence(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("e1", "A", nostrcal.KindTimeEvent, 1000, nostrcal.Tag{"d", "x"}),
		rec("e2", "A", nostrcal.KindTimeEvent, 2000, nostrcal.Tag{"d", "x"}),
		rec("e3", "B", nostrcal.KindDateEvent, 1500, nostrcal.Tag{"d", "y"}),
		rec("r1", "C", nostrcal.KindRSVP, 1700, nostrcal.Tag{"e", "e2"}),
		rec("p1", "D", 1, 1800),
	}

	once := r.Resolve(records)
	twice := r.Resolve(once)

	if len(once) != len(twice) {
		t.Fatalf("expected stable length, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("slot %d changed: %s vs %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestResolveTieKeepsFirstSeen(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("first", "A", nostrcal.KindTimeEvent, 1000, nostrcal.Tag{"d", "x"}),
		rec("second", "A", nostrcal.KindTimeEvent, 1000, nostrcal.Tag{"d", "x"}),
	}

	out := r.Resolve(records)
	if len(out) != 1 || out[0].ID != "first" {
		t.Fatalf("expected first-seen record to survive a tie, got %+v", out)
	}
}

func TestResolveNonReplaceableIsolation(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("n1", "A", 1, 1000, nostrcal.Tag{"d", "x"}),
		rec("n2", "A", 1, 2000, nostrcal.Tag{"d", "x"}),
	}

	out := r.Resolve(records)
	if len(out) != 2 {
		t.Fatalf("non-replaceable records must never merge: got %d", len(out))
	}
}

func TestResolveDropsMissingIdentifier(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("bad", "A", nostrcal.KindTimeEvent, 1000),
		rec("good", "A", nostrcal.KindTimeEvent, 2000, nostrcal.Tag{"d", "x"}),
	}

	out := r.Resolve(records)
	if len(out) != 1 || out[0].ID != "good" {
		t.Fatalf("expected record without d tag to be dropped, got %+v", out)
	}
}

func TestResolvePreservesSlotOnReplace(t *testing.T) {
	r := New()

	records := []nostrcal.Record{
		rec("a1", "A", nostrcal.KindTimeEvent, 1000, nostrcal.Tag{"d", "x"}),
		rec("b1", "B", nostrcal.KindTimeEvent, 1000, nostrcal.Tag{"d", "y"}),
		rec("a2", "A", nostrcal.KindTimeEvent, 2000, nostrcal.Tag{"d", "x"}),
	}

	out := r.Resolve(records)
	if len(out) != 2 {
		t.Fatalf("expected 2 entities got %d", len(out))
	}
	if out[0].ID != "a2" || out[1].ID != "b1" {
		t.Fatalf("replacement must keep the first-seen slot, got %s,%s", out[0].ID, out[1].ID)
	}
}

func TestAggregateAttachments(t *testing.T) {
	r := New()

	entity := rec("e2", "A", nostrcal.KindTimeEvent, 2000, nostrcal.Tag{"d", "x"})
	coord := "31923:A:x"

	attachments := []nostrcal.Record{
		// stale reference to a previous version by coordinate
		rec("r1", "B", nostrcal.KindRSVP, 1000, nostrcal.Tag{"a", coord}, nostrcal.Tag{"status", "tentative"}),
		// newer RSVP from the same author by id
		rec("r2", "B", nostrcal.KindRSVP, 3000, nostrcal.Tag{"e", "e2"}, nostrcal.Tag{"status", "accepted"}),
		// unrelated
		rec("r3", "C", nostrcal.KindRSVP, 1500, nostrcal.Tag{"e", "other"}),
		// second author
		rec("r4", "D", nostrcal.KindRSVP, 1200, nostrcal.Tag{"a", coord}, nostrcal.Tag{"status", "declined"}),
	}

	out := r.AggregateAttachments(entity, attachments)
	if len(out) != 2 {
		t.Fatalf("expected 2 current attachments got %d", len(out))
	}

	byAuthor := map[string]nostrcal.Record{}
	for _, a := range out {
		byAuthor[a.Author] = a
	}
	if byAuthor["B"].ID != "r2" {
		t.Fatalf("expected newest attachment per author, got %s", byAuthor["B"].ID)
	}
	if byAuthor["D"].TagValue("status") != "declined" {
		t.Fatalf("expected coordinate-form reference to match")
	}
}
