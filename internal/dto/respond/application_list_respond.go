package respond

import (
	"net/url"
	"strconv"

	"ecotech_server/internal/model"
)

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page    int
	PerPage int
	Total   int64
	Pages   int
}

// NewPagination computes the page count; a page past the end is kept as requested.
func NewPagination(page, perPage int, total int64) Pagination {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
func (p Pagination) PrevNum() int  { return p.Page - 1 }
func (p Pagination) NextNum() int  { return p.Page + 1 }

// IterPages lists the page numbers to link, with 0 marking an elided gap:
// two pages at each edge, two before the current page and four after it.
func (p Pagination) IterPages() []int {
	const leftEdge, leftCurrent, rightCurrent, rightEdge = 2, 2, 4, 2
	var out []int
	pagesEnd := p.Pages + 1
	if pagesEnd == 1 {
		return out
	}
	leftEnd := min(1+leftEdge, pagesEnd)
	for i := 1; i < leftEnd; i++ {
		out = append(out, i)
	}
	if leftEnd == pagesEnd {
		return out
	}
	midStart := max(leftEnd, p.Page-leftCurrent)
	midEnd := min(p.Page+rightCurrent+1, pagesEnd)
	if midStart > leftEnd {
		out = append(out, 0)
	}
	for i := midStart; i < midEnd; i++ {
		out = append(out, i)
	}
	if midEnd >= pagesEnd {
		return out
	}
	rightStart := max(midEnd, pagesEnd-rightEdge)
	if rightStart > midEnd {
		out = append(out, 0)
	}
	for i := rightStart; i < pagesEnd; i++ {
		out = append(out, i)
	}
	return out
}

// ApplicationListRespond is one page of the admin application list plus the active filters.
type ApplicationListRespond struct {
	Items []model.InternshipApplication
	Pagination
	StatusFilter string // "all" when unset
	TypeFilter   string // "all" when unset
	Search       string
}

// PageURL links to page n with the current filters preserved.
func (r *ApplicationListRespond) PageURL(n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if r.StatusFilter != "" && r.StatusFilter != "all" {
		q.Set("status", r.StatusFilter)
	}
	if r.TypeFilter != "" && r.TypeFilter != "all" {
		q.Set("type", r.TypeFilter)
	}
	if r.Search != "" {
		q.Set("search", r.Search)
	}
	return "/admin/applications?" + q.Encode()
}
