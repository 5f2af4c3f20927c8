package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/storefront"
)

type cartLineResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type cartResponse struct {
	Lines    []cartLineResponse `json:"lines"`
	Count    int                `json:"count"`
	TotalUSD string             `json:"total_usd"`
}

func (s *Server) apiCart(c *gin.Context) {
	cart, err := s.store.Load(c.Request.Context(), ownerID(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := cartResponse{
		Lines:    make([]cartLineResponse, 0, len(cart.Lines)),
		Count:    cart.Count(),
		TotalUSD: cart.TotalUSD().StringFixed(2),
	}
	for _, l := range cart.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ID:       l.ID,
			Title:    l.Title,
			Price:    l.Price.StringFixed(2),
			Quantity: l.Quantity,
		})
	}

	c.JSON(http.StatusOK, resp)
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

type addItemResponse struct {
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
}

func (s *Server) apiAddToCart(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	catalog := storefront.NewCatalog(ownerID(c), s.products, s.rates, s.store, s.log)
	defer catalog.Close()

	if err := catalog.Load(ctx); err != nil {
		s.fail(c, err)
		return
	}
	if catalog.State() == storefront.CatalogFailed {
		c.JSON(http.StatusBadGateway, gin.H{"error": storefront.MsgLoadFailed})
		return
	}

	err := catalog.AddToCart(ctx, req.ProductID)
	if errors.Is(err, storefront.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	view := catalog.View()
	c.JSON(http.StatusOK, addItemResponse{Message: view.Notice, CartCount: view.CartCount})
}
