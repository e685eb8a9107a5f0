package catalog

// DefaultPageSize is the number of books per page in the main list
const DefaultPageSize = 8

// Browser holds the criteria and pagination state of one catalog view.
// Any change to filter, sort or page size resets the page to 1 so the view
// never points past the end of a new result set.
type Browser struct {
	criteria Criteria
	page     int
	pageSize int
}

// Result is one rendered page of the main list
type Result struct {
	Books      []Book `json:"books"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	NoMatches  bool   `json:"no_matches"`
}

// NewBrowser starts on page 1 with the given page size
func NewBrowser(c Criteria, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{criteria: c, page: 1, pageSize: pageSize}
}

func (b *Browser) Criteria() Criteria { return b.criteria }
func (b *Browser) Page() int          { return b.page }
func (b *Browser) PageSize() int      { return b.pageSize }

func (b *Browser) SetSearch(s string) {
	if s != b.criteria.Search {
		b.criteria.Search = s
		b.page = 1
	}
}

func (b *Browser) SetGenre(g string) {
	if g != b.criteria.Genre {
		b.criteria.Genre = g
		b.page = 1
	}
}

func (b *Browser) SetSort(key SortKey, dir Direction) {
	if key != b.criteria.SortKey || dir != b.criteria.Direction {
		b.criteria.SortKey = key
		b.criteria.Direction = dir
		b.page = 1
	}
}

func (b *Browser) SetPageSize(n int) {
	if n > 0 && n != b.pageSize {
		b.pageSize = n
		b.page = 1
	}
}

// SetPage moves to a 1-based page. It does not clamp; Result reports an
// empty page when the index is past the end.
func (b *Browser) SetPage(p int) {
	b.page = p
}

// Result recomputes the current page from the catalog
func (b *Browser) Result(books []Book) Result {
	matches := Query(books, b.criteria)
	p := Paginate(matches, b.page, b.pageSize)
	return Result{
		Books:      p.Items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		NoMatches:  len(matches) == 0,
	}
}
