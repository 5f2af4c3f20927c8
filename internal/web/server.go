package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	products port.ProductSource
	rates    port.RateSource
	store    port.CartStore
	log      *zap.Logger
}

func NewServer(products port.ProductSource, rates port.RateSource, store port.CartStore, log *zap.Logger) *Server {
	return &Server{
		products: products,
		rates:    rates,
		store:    store,
		log:      log,
	}
}

// Router wires the three pages, their form actions and the JSON cart API.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), session())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/", s.catalogPage)
	r.POST("/cart/add", s.addToCart)

	r.GET("/cart", s.cartPage)
	r.POST("/cart/items/:index/:action", s.cartAction)

	r.GET("/checkout", s.checkoutPage)
	r.POST("/checkout", s.submitCheckout)

	api := r.Group("/api")
	{
		api.GET("/cart", s.apiCart)
		api.POST("/cart/items", s.apiAddToCart)
	}

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
