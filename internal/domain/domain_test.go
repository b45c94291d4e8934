package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "", "Data,Base", "algorithms"})
	want := TagList{"algorithms", "database", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
}

func TestTagListValueScan(t *testing.T) {
	v, err := TagList{"a", "b"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != ",a,b," {
		t.Errorf("expected ,a,b, got %v", v)
	}

	var tags TagList
	if err := tags.Scan([]byte(",a,b,")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(tags, TagList{"a", "b"}) {
		t.Errorf("unexpected tags %v", tags)
	}

	if err := tags.Scan(""); err != nil {
		t.Fatalf("Scan empty: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected empty tags, got %v", tags)
	}
}

func TestReportTargetKind(t *testing.T) {
	id := uint64(7)
	other := uint64(8)

	kind, got, ok := ReportTarget{AnswerID: &id}.Kind()
	if !ok || kind != ReportTargetAnswer || got != 7 {
		t.Errorf("unexpected kind=%s id=%d ok=%v", kind, got, ok)
	}

	if _, _, ok := (ReportTarget{}).Kind(); ok {
		t.Error("expected empty target to be rejected")
	}
	if _, _, ok := (ReportTarget{QuestionID: &id, ReplyID: &other}).Kind(); ok {
		t.Error("expected two targets to be rejected")
	}

	if key := PendingReportKey(3, ReportTargetReply, 9); key != "3:reply:9" {
		t.Errorf("unexpected pending key %s", key)
	}
}

func TestRole(t *testing.T) {
	if r, ok := ParseRole("admin"); !ok || !r.IsStaff() {
		t.Error("admin should parse as staff")
	}
	if _, ok := ParseRole("moderator"); ok {
		t.Error("unknown role should not parse")
	}
	if RoleStudent.IsStaff() {
		t.Error("student is not staff")
	}
}
