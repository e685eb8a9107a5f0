package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bookstore/services/storefront/internal/cart"
	"github.com/bookstore/services/storefront/internal/catalog"
	"github.com/bookstore/services/storefront/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type addToCartRequest struct {
	BookID   string `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type countResponse struct {
	Count int `json:"count"`
}

// listBooks renders one page of the main catalog list
func (s *Server) listBooks(c *gin.Context) {
	criteria := catalog.DefaultCriteria()
	criteria.Search = c.Query("q")
	if genre := c.Query("genre"); genre != "" {
		criteria.Genre = genre
	}
	criteria.SortKey = catalog.ParseSortKey(c.Query("sort"))
	criteria.Direction = catalog.ParseDirection(c.Query("dir"))

	browser := catalog.NewBrowser(criteria, queryInt(c, "page_size", s.pageSize))
	browser.SetPage(queryInt(c, "page", 1))

	metrics.CatalogQueries.WithLabelValues(string(criteria.SortKey)).Inc()
	c.JSON(http.StatusOK, browser.Result(s.catalog))
}

func (s *Server) getBook(c *gin.Context) {
	book, ok := s.index.Lookup(c.Param("id"))
	if !ok {
		errorResponse(c, http.StatusNotFound, "book not found")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) listGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": catalog.Genres(s.catalog)})
}

// featured renders one carousel page; the index wraps
func (s *Server) featured(c *gin.Context) {
	c.JSON(http.StatusOK, s.carousel.View(queryInt(c, "page", 0)))
}

func (s *Server) getCart(c *gin.Context) {
	current := s.cart.Read(c.Request.Context())
	c.JSON(http.StatusOK, cart.Resolve(current, s.index))
}

// cartCount is the lightweight read behind the navigation badge
func (s *Server) cartCount(c *gin.Context) {
	c.JSON(http.StatusOK, countResponse{Count: s.cart.TotalItemCount(c.Request.Context())})
}

// addToCart is the onAddToCart action
func (s *Server) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BookID) == "" {
		errorResponse(c, http.StatusBadRequest, "book_id is required")
		return
	}

	updated, err := s.cart.AddOrIncrement(c.Request.Context(), req.BookID, req.Quantity)
	if err != nil {
		s.log.Error("Failed to add to cart", zap.String("book_id", req.BookID), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.Resolve(updated, s.index))
}

func (s *Server) setCartQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "quantity is required")
		return
	}

	bookID := c.Param("id")
	updated, err := s.cart.SetQuantity(c.Request.Context(), bookID, *req.Quantity)
	if err != nil {
		s.log.Error("Failed to set cart quantity", zap.String("book_id", bookID), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.Resolve(updated, s.index))
}

func (s *Server) removeFromCart(c *gin.Context) {
	bookID := c.Param("id")
	updated, err := s.cart.Remove(c.Request.Context(), bookID)
	if err != nil {
		s.log.Error("Failed to remove from cart", zap.String("book_id", bookID), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart.Resolve(updated, s.index))
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
