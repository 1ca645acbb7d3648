// Package api exposes the fibernet access layer over HTTP with gin.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fibernet/internal/api/middleware"
	"fibernet/internal/core"
	"fibernet/internal/export"
	"fibernet/internal/pkg/logger"
	"fibernet/pkg/domain"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// PhotoPath is the route serving stored photos. The filesystem blob backend
// is configured with it as its base URL.
const PhotoPath = BasePath + "/fotos"

// Options wires the router's collaborators.
type Options struct {
	Service  *core.Service
	Exporter *export.Exporter
	// Gatherer backs /metrics; the default registry is used when nil.
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter builds the gin engine serving the API.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(middleware.AccessLog(log), middleware.ErrorHandler())

	s := &Server{svc: opts.Service, exporter: opts.Exporter}

	router.GET("/healthz", s.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group(BasePath)

	clients := v1.Group("/clientes")
	clients.GET("", s.ListClients)
	clients.POST("", s.CreateClient)
	clients.GET("/:id", s.GetClient)
	clients.PATCH("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)
	clients.GET("/:id/fibras", s.ListClientFibers)
	clients.GET("/:id/portas", s.ListClientPorts)
	clients.GET("/:id/circuito", s.GetClientCircuit)
	clients.GET("/:id/chamados", s.ListClientTickets)
	clients.PUT("/:id/foto", s.photoUpload(domain.EntityClient))

	boxes := v1.Group("/caixas")
	boxes.GET("", s.ListBoxes)
	boxes.POST("", s.CreateBox)
	boxes.GET("/:id", s.GetBox)
	boxes.PATCH("/:id", s.UpdateBox)
	boxes.DELETE("/:id", s.DeleteBox)
	boxes.POST("/:id/cabos", s.AddCable)
	boxes.PATCH("/:id/cabos/:caboId/fibras/:fibraId", s.UpdateFiber)
	boxes.PUT("/:id/foto", s.photoUpload(domain.EntityBox))

	switches := v1.Group("/switches")
	switches.GET("", s.ListSwitches)
	switches.POST("", s.CreateSwitch)
	switches.GET("/:id", s.GetSwitch)
	switches.PATCH("/:id", s.UpdateSwitch)
	switches.DELETE("/:id", s.DeleteSwitch)
	switches.PATCH("/:id/portas/:portaId", s.UpdatePort)
	switches.PUT("/:id/foto", s.photoUpload(domain.EntitySwitch))

	circuits := v1.Group("/circuitos")
	circuits.GET("", s.ListCircuits)
	circuits.POST("", s.CreateCircuit)
	circuits.GET("/:id", s.GetCircuit)
	circuits.PATCH("/:id", s.UpdateCircuit)
	circuits.DELETE("/:id", s.DeleteCircuit)
	circuits.GET("/:id/caminho", s.GetCircuitPath)

	techs := v1.Group("/tecnicos")
	techs.GET("", s.ListTechnicians)
	techs.POST("", s.CreateTechnician)
	techs.GET("/:id", s.GetTechnician)
	techs.PATCH("/:id", s.UpdateTechnician)
	techs.DELETE("/:id", s.DeleteTechnician)

	tickets := v1.Group("/chamados")
	tickets.GET("", s.ListTickets)
	tickets.POST("", s.CreateTicket)
	tickets.GET("/:id", s.GetTicket)
	tickets.PATCH("/:id", s.UpdateTicket)
	tickets.DELETE("/:id", s.DeleteTicket)

	v1.GET("/overview", s.Overview)
	v1.GET("/exports", s.ListExports)
	v1.POST("/exports", s.CreateExport)
	v1.GET("/exports/:id", s.GetExport)
	v1.GET("/fotos/*key", s.ServePhoto)

	return router
}
