package controller

import (
	"ergo-assist-be/internal/pkg/serverutils"
	"ergo-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	GetSummary(ctx *fiber.Ctx) error
	GetVideos(ctx *fiber.Ctx) error
}

type statsController struct {
	statsService service.IStatsService
}

func NewStatsController(statsService service.IStatsService) IStatsController {
	return &statsController{
		statsService: statsService,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stats/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("summary", c.GetSummary)
	h.Get("videos", c.GetVideos)
}

func (c *statsController) GetSummary(ctx *fiber.Ctx) error {
	res, err := c.statsService.GetSummary(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}

func (c *statsController) GetVideos(ctx *fiber.Ctx) error {
	res := c.statsService.GetVideos(ctx.Context())

	return ctx.JSON(serverutils.SuccessResponse("Success get videos", res))
}
