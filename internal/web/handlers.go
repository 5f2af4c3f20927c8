package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/storefront"
	"go.uber.org/zap"
)

func (s *Server) catalogPage(c *gin.Context) {
	ctx := c.Request.Context()

	catalog := storefront.NewCatalog(ownerID(c), s.products, s.rates, s.store, s.log)
	defer catalog.Close()

	if err := catalog.Load(ctx); err != nil {
		s.fail(c, err)
		return
	}

	if code := c.Query("currency"); code != "" {
		unit, err := domain.ParseCurrency(code)
		if err != nil {
			s.log.Warn("ignoring currency selection", zap.Error(err))
		} else if err := catalog.ChangeCurrency(ctx, unit); err != nil {
			s.fail(c, err)
			return
		}
	}

	if category := c.Query("category"); category != "" {
		catalog.FilterCategory(category)
	}

	if raw := c.Query("detail"); raw != "" {
		if err := s.showDetail(catalog, raw); err != nil {
			s.log.Warn("ignoring detail request", zap.String("detail", raw), zap.Error(err))
		}
	}

	if c.Query("added") == "1" {
		catalog.Acknowledge()
	}

	c.HTML(http.StatusOK, "catalog", catalog.View())
}

func (s *Server) showDetail(catalog *storefront.Catalog, raw string) error {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	return catalog.ShowDetail(id)
}

func (s *Server) addToCart(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product.")
		return
	}

	catalog := storefront.NewCatalog(ownerID(c), s.products, s.rates, s.store, s.log)
	defer catalog.Close()

	if err := catalog.Load(ctx); err != nil {
		s.fail(c, err)
		return
	}
	if catalog.State() == storefront.CatalogFailed {
		c.String(http.StatusBadGateway, storefront.MsgLoadFailed)
		return
	}

	err = catalog.AddToCart(ctx, id)
	if errors.Is(err, storefront.ErrProductNotFound) {
		c.String(http.StatusNotFound, "Product not found.")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	q := url.Values{"added": {"1"}}
	copyParam(q, c.PostForm("currency"), "currency")
	copyParam(q, c.PostForm("category"), "category")
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

func (s *Server) cartPage(c *gin.Context) {
	ctx := c.Request.Context()

	cart := storefront.NewCart(ownerID(c), s.rates, s.store, s.log)
	defer cart.Close()

	if err := cart.Load(ctx); err != nil {
		s.fail(c, err)
		return
	}

	if code := c.Query("currency"); code != "" {
		unit, err := domain.ParseCurrency(code)
		if err != nil {
			s.log.Warn("ignoring currency selection", zap.Error(err))
		} else if err := cart.ChangeCurrency(ctx, unit); err != nil {
			s.fail(c, err)
			return
		}
	}

	c.HTML(http.StatusOK, "cart", cart.View())
}

func (s *Server) cartAction(c *gin.Context) {
	ctx := c.Request.Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid cart line.")
		return
	}

	cart := storefront.NewCart(ownerID(c), s.rates, s.store, s.log)
	defer cart.Close()

	switch c.Param("action") {
	case "decrease":
		err = cart.Decrease(ctx, index)
	case "increase":
		err = cart.Increase(ctx, index)
	case "remove":
		err = cart.Remove(ctx, index)
	default:
		c.String(http.StatusNotFound, "Unknown cart action.")
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	target := "/cart"
	if code := c.PostForm("currency"); code != "" {
		target += "?" + url.Values{"currency": {code}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

type checkoutRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Address string `form:"address"`
}

func (s *Server) checkoutPage(c *gin.Context) {
	checkout := storefront.NewCheckout(ownerID(c), s.store, s.log)
	c.HTML(http.StatusOK, "checkout", checkout.View())
}

func (s *Server) submitCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid form.")
		return
	}

	checkout := storefront.NewCheckout(ownerID(c), s.store, s.log)

	err := checkout.Submit(c.Request.Context(), domain.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	status := http.StatusOK
	if checkout.State() == storefront.CheckoutInvalid {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "checkout", checkout.View())
}

func copyParam(q url.Values, value, key string) {
	if value != "" {
		q.Set(key, value)
	}
}
