package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-placeholder/internal/store"
	"github.com/i474232898/weather-placeholder/internal/weather"
)

var validate = validator.New()

// SampleService is the part of weather.Service the handlers need.
type SampleService interface {
	Generate(ctx context.Context, req weather.Request) (weather.SampleSet, error)
	Today(ctx context.Context) (weather.SampleSet, error)
	Get(id string) (weather.SampleSet, error)
	Reference() weather.SampleSet
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service SampleService, maxDays int) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/samples", func(c *fiber.Ctx) error {
		var req samplesQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if maxDays > 0 && req.Days > maxDays {
			return fiber.NewError(fiber.StatusBadRequest, "days must not exceed "+strconv.Itoa(maxDays))
		}

		start, err := weather.ParseDate(req.Start)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		set, err := service.Generate(c.UserContext(), weather.Request{
			Start: start,
			Days:  req.Days,
			Seed:  req.Seed,
		})
		if err != nil {
			if errors.Is(err, weather.ErrInvalidInput) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate samples")
		}

		return c.JSON(set)
	})

	v1.Get("/weather/samples/:id", func(c *fiber.Ctx) error {
		set, err := service.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no sample set with that id")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch samples")
		}
		return c.JSON(set)
	})

	v1.Get("/weather/today", func(c *fiber.Ctx) error {
		set, err := service.Today(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate today's samples")
		}
		return c.JSON(set)
	})

	v1.Get("/weather/reference", func(c *fiber.Ctx) error {
		return c.JSON(service.Reference())
	})
}

// samplesQuery holds query parameters for the samples endpoint.
type samplesQuery struct {
	Start string `validate:"required,datetime=2006-01-02"`
	Days  int    `validate:"gte=0"`
	Seed  *int32
}

func (q *samplesQuery) bind(c *fiber.Ctx) error {
	q.Start = c.Query("start")

	daysStr := c.Query("days")
	if daysStr == "" {
		return errors.New("days query parameter is required")
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return errors.New("days must be an integer")
	}
	q.Days = days

	if seedStr := c.Query("seed"); seedStr != "" {
		n, err := strconv.ParseInt(seedStr, 10, 32)
		if err != nil {
			return errors.New("seed must be a 32-bit integer")
		}
		seed := int32(n)
		q.Seed = &seed
	}
	return nil
}
