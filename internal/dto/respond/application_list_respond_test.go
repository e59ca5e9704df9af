package respond

import (
	"net/url"
	"reflect"
	"testing"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.Pages != 3 || !p.HasPrev() || !p.HasNext() || p.PrevNum() != 1 || p.NextNum() != 3 {
		t.Fatalf("unexpected pagination %+v", p)
	}
	empty := NewPagination(1, 20, 0)
	if empty.Pages != 0 || empty.HasNext() || empty.HasPrev() {
		t.Fatalf("unexpected empty pagination %+v", empty)
	}
	past := NewPagination(9, 20, 41)
	if past.HasNext() {
		t.Fatalf("page past the end has no next")
	}
}

func TestIterPages(t *testing.T) {
	cases := []struct {
		page, pages int
		want        []int
	}{
		{1, 0, nil},
		{1, 3, []int{1, 2, 3}},
		{1, 20, []int{1, 2, 3, 4, 5, 0, 19, 20}},
		{10, 20, []int{1, 2, 0, 8, 9, 10, 11, 12, 13, 14, 0, 19, 20}},
		{20, 20, []int{1, 2, 0, 18, 19, 20}},
	}
	for _, tc := range cases {
		p := Pagination{Page: tc.page, Pages: tc.pages}
		if got := p.IterPages(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("IterPages(page=%d, pages=%d) = %v, want %v", tc.page, tc.pages, got, tc.want)
		}
	}
}

func TestPageURLKeepsFilters(t *testing.T) {
	r := &ApplicationListRespond{StatusFilter: "pending", TypeFilter: "AI & Machine Learning", Search: "XYZ Univ"}
	u, err := url.Parse(r.PageURL(3))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if u.Path != "/admin/applications" || q.Get("page") != "3" || q.Get("status") != "pending" ||
		q.Get("type") != "AI & Machine Learning" || q.Get("search") != "XYZ Univ" {
		t.Fatalf("unexpected url %s", u)
	}

	all := &ApplicationListRespond{StatusFilter: "all", TypeFilter: "all"}
	if got := all.PageURL(1); got != "/admin/applications?page=1" {
		t.Fatalf("PageURL = %q", got)
	}
}
