// Package httpapi exposes the location resolver and weather aggregator
// to the browser front end as a JSON API.
package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skydash/weather-dashboard/internal/apperr"
	"github.com/skydash/weather-dashboard/internal/location"
	"github.com/skydash/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, resolver *location.Resolver, aggregator *weather.Aggregator) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		var req searchQuery
		req.Q = c.Query("q")
		req.Scope = c.Query("scope", string(location.ScopeAll))

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results, err := resolver.SearchByText(c.Context(), req.Q, location.Scope(req.Scope))
		if err != nil {
			return toHTTPError(err)
		}
		if results == nil {
			results = []location.Place{}
		}

		return c.JSON(fiber.Map{"results": results})
	})

	v1.Get("/locations/reverse", func(c *fiber.Ctx) error {
		lat, lon, err := parseCoords(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		place, err := resolver.ReverseResolve(c.Context(), lat, lon)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(place)
	})

	v1.Get("/locations/popular", func(c *fiber.Ctx) error {
		var domestic, international []location.Place
		for _, city := range location.PopularCities() {
			if city.Country == "IN" {
				domestic = append(domestic, city)
			} else {
				international = append(international, city)
			}
		}

		return c.JSON(fiber.Map{
			"domestic":      domestic,
			"international": international,
		})
	})

	v1.Get("/locations/current", func(c *fiber.Ctx) error {
		place := resolver.Current()
		if place == nil {
			return fiber.NewError(fiber.StatusNotFound, "no location selected")
		}
		return c.JSON(place)
	})

	v1.Post("/locations/current", func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resolver.Select(location.Place{
			Name:    req.Name,
			Country: req.Country,
			State:   req.State,
			Lat:     *req.Lat,
			Lon:     *req.Lon,
		})

		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		conditions, err := aggregator.FetchCurrent(c.Context(), q)
		if err != nil {
			return toHTTPError(err)
		}

		state := aggregator.State()
		return c.JSON(fiber.Map{
			"current":     conditions,
			"lastUpdated": state.LastUpdated,
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bundle, err := aggregator.FetchForecast(c.Context(), q)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(bundle)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := aggregator.FetchWeatherData(c.Context(), q); err != nil {
			return toHTTPError(err)
		}

		return c.JSON(aggregator.State())
	})
}

// searchQuery holds query parameters for the text search endpoint. An
// empty q is allowed: it clears the result set.
type searchQuery struct {
	Q     string `validate:"max=128"`
	Scope string `validate:"oneof=all country:IN"`
}

// selectRequest is the body for selecting the current location.
type selectRequest struct {
	Name    string   `json:"name" validate:"required"`
	Country string   `json:"country"`
	State   string   `json:"state"`
	Lat     *float64 `json:"lat" validate:"required"`
	Lon     *float64 `json:"lon" validate:"required"`
}

// parseCoords reads required lat/lon query parameters.
func parseCoords(c *fiber.Ctx) (float64, float64, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, errors.New("invalid lon")
	}
	return lat, lon, nil
}

// parseWeatherQuery accepts either a free-text q or a lat/lon pair.
func parseWeatherQuery(c *fiber.Ctx) (weather.Query, error) {
	if q := c.Query("q"); q != "" {
		return weather.TextQuery(q), nil
	}

	lat, lon, err := parseCoords(c)
	if err != nil {
		return weather.Query{}, errors.New("either q or lat/lon query parameters are required")
	}
	return weather.CoordQuery(lat, lon), nil
}

// toHTTPError maps classified application errors onto HTTP statuses.
func toHTTPError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return fiber.NewError(ae.Kind.HTTPStatus(), ae.Message)
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
