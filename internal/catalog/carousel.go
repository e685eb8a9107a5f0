package catalog

// FeaturedPageSize is the number of featured books shown per carousel page
const FeaturedPageSize = 4

// Carousel windows the featured subset of a catalog into fixed-size pages
// with circular navigation. Page indexes are 0-based.
type Carousel struct {
	featured []Book
	pageSize int
}

// CarouselView is what a surface needs to render one carousel page
type CarouselView struct {
	Books          []Book `json:"books"`
	Page           int    `json:"page"`
	TotalPages     int    `json:"total_pages"`
	ShowNavigation bool   `json:"show_navigation"`
}

// NewCarousel keeps the featured books of the catalog in catalog order.
// A non-positive pageSize falls back to FeaturedPageSize.
func NewCarousel(books []Book, pageSize int) *Carousel {
	if pageSize <= 0 {
		pageSize = FeaturedPageSize
	}
	var featured []Book
	for _, b := range books {
		if b.Featured {
			featured = append(featured, b)
		}
	}
	return &Carousel{featured: featured, pageSize: pageSize}
}

// Featured returns the featured subset
func (c *Carousel) Featured() []Book {
	return c.featured
}

// TotalPages is ceil(|featured| / pageSize), 0 when nothing is featured
func (c *Carousel) TotalPages() int {
	return (len(c.featured) + c.pageSize - 1) / c.pageSize
}

// ShowNavigation reports whether prev/next and page dots are meaningful
func (c *Carousel) ShowNavigation() bool {
	return c.TotalPages() > 1
}

// Next advances one page, wrapping from the last page to 0
func (c *Carousel) Next(page int) int {
	return c.Jump(page + 1)
}

// Prev retreats one page, wrapping from 0 to the last page
func (c *Carousel) Prev(page int) int {
	return c.Jump(page - 1)
}

// Jump normalizes an arbitrary index into [0, TotalPages). With no pages it
// always returns 0.
func (c *Carousel) Jump(page int) int {
	total := c.TotalPages()
	if total == 0 {
		return 0
	}
	page %= total
	if page < 0 {
		page += total
	}
	return page
}

// Window returns the featured books on the given page
func (c *Carousel) Window(page int) []Book {
	if c.TotalPages() == 0 {
		return []Book{}
	}
	start := c.Jump(page) * c.pageSize
	end := min(start+c.pageSize, len(c.featured))
	return c.featured[start:end:end]
}

// View renders the given page, normalizing the index first
func (c *Carousel) View(page int) CarouselView {
	page = c.Jump(page)
	return CarouselView{
		Books:          c.Window(page),
		Page:           page,
		TotalPages:     c.TotalPages(),
		ShowNavigation: c.ShowNavigation(),
	}
}
