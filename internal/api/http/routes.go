package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-app-core/internal/log"
	"github.com/i474232898/weather-app-core/internal/store"
	"github.com/i474232898/weather-app-core/internal/units"
	"github.com/i474232898/weather-app-core/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, profiles store.ProfileReader) {
	h := &handler{service: service, profiles: profiles}

	v1 := app.Group("/api/v1/weather")
	v1.Get("/current", h.current)
	v1.Get("/hourly", h.hourly)
	v1.Get("/daily", h.daily)
	v1.Get("/stats", h.stats)
	v1.Get("/astro", h.astro)
	v1.Get("/alerts", h.alerts)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type handler struct {
	service  *weather.Service
	profiles store.ProfileReader
}

// weatherQuery holds the query parameters shared by all weather endpoints.
type weatherQuery struct {
	City     string `query:"city" validate:"omitempty,max=100"`
	Date     string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	TempUnit string `query:"tempUnit" validate:"omitempty,oneof=Celsius Fahrenheit"`
	WindUnit string `query:"windUnit" validate:"omitempty,oneof=km/h mph"`
	User     string `query:"user" validate:"omitempty,max=128"`
}

// request is a weatherQuery with the city and units resolved.
type request struct {
	City  string
	Date  string
	Prefs units.Preferences
}

// resolve validates the query and fills the city and units from the user's
// profile where the query leaves them out.
func (h *handler) resolve(c *fiber.Ctx) (request, error) {
	var q weatherQuery
	if err := c.QueryParser(&q); err != nil {
		return request{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return request{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	req := request{
		City:  strings.TrimSpace(q.City),
		Date:  q.Date,
		Prefs: units.DefaultPreferences,
	}

	if q.User != "" {
		p, err := h.profiles.GetProfile(c.UserContext(), q.User)
		if errors.Is(err, store.ErrNotFound) {
			return request{}, fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		if err != nil {
			log.Errorw("load profile failed", "user", q.User, "error", err)
			return request{}, fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
		}
		req.Prefs = p.Preferences()
		if req.City == "" {
			req.City = p.MainCity
		}
	}

	if q.TempUnit != "" {
		req.Prefs.Temp, _ = units.ParseTempUnit(q.TempUnit)
	}
	if q.WindUnit != "" {
		req.Prefs.Wind, _ = units.ParseWindUnit(q.WindUnit)
	}

	if req.City == "" {
		return request{}, fiber.NewError(fiber.StatusBadRequest, "city is required")
	}
	return req, nil
}

// fail maps a service error to a response. Upstream failures answer 502 with
// placeholder so clients can still render something.
func fail(c *fiber.Ctx, err error, placeholder interface{}) error {
	switch {
	case errors.Is(err, weather.ErrNotFoundForDate):
		return fiber.NewError(fiber.StatusNotFound, "no forecast for requested date")
	case errors.Is(err, weather.ErrEmptyCity), errors.Is(err, weather.ErrInvalidDays):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		return fiber.NewError(fiber.StatusRequestTimeout, "request canceled")
	case weather.IsUpstream(err):
		log.Warnw("upstream weather request failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":       true,
			"message":     "failed to fetch weather data",
			"placeholder": placeholder,
		})
	}
	log.Errorw("weather request failed", "path", c.Path(), "error", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
}

func (h *handler) current(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	var snap weather.WeatherSnapshot
	if req.Date == "" {
		snap, err = h.service.Current(c.UserContext(), req.City, req.Prefs.Temp)
	} else {
		snap, err = h.service.CurrentForDate(c.UserContext(), req.City, req.Date, req.Prefs.Temp)
	}
	if err != nil {
		return fail(c, err, weather.PlaceholderSnapshot())
	}

	return c.JSON(fiber.Map{
		"city":     req.City,
		"unit":     req.Prefs.Temp.String(),
		"snapshot": snap,
	})
}

func (h *handler) hourly(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	hours, err := h.service.Hourly(c.UserContext(), req.City, req.Date, req.Prefs.Temp)
	if err != nil {
		return fail(c, err, []weather.HourlyRecord{})
	}

	return c.JSON(fiber.Map{
		"city":  req.City,
		"unit":  req.Prefs.Temp.String(),
		"hours": hours,
	})
}

func (h *handler) daily(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	days, err := h.service.Daily(c.UserContext(), req.City, req.Prefs.Temp)
	if err != nil {
		return fail(c, err, []weather.DailyRecord{})
	}

	return c.JSON(fiber.Map{
		"city": req.City,
		"unit": req.Prefs.Temp.String(),
		"days": days,
	})
}

func (h *handler) stats(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.UserContext(), req.City, req.Date, req.Prefs)
	if err != nil {
		return fail(c, err, weather.PlaceholderStats())
	}

	return c.JSON(fiber.Map{
		"city":  req.City,
		"stats": stats,
	})
}

func (h *handler) astro(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	sm, err := h.service.SunMoment(c.UserContext(), req.City, req.Date)
	if err != nil {
		return fail(c, err, weather.SunMoment{Sunrise: weather.Unknown, Sunset: weather.Unknown})
	}

	return c.JSON(fiber.Map{
		"city":  req.City,
		"astro": sm,
	})
}

func (h *handler) alerts(c *fiber.Ctx) error {
	req, err := h.resolve(c)
	if err != nil {
		return err
	}

	alerts, err := h.service.Alerts(c.UserContext(), req.City)
	if err != nil {
		return fail(c, err, []string{})
	}

	return c.JSON(fiber.Map{
		"city":   req.City,
		"alerts": alerts,
	})
}
