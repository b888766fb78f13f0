package api

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/internal/service"
	"bitwise74/tourbuddy/pkg/middleware"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type placeBody struct {
	Title       string `form:"title"`
	Location    string `form:"location"`
	Description string `form:"description"`
}

func (a *API) PlacesIndex(c *gin.Context) {
	places, err := a.Deps.Places.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	newRequest(c).render(c, http.StatusOK, "places/index", gin.H{
		"title":  "All places",
		"places": places,
	})
}

func (a *API) PlacesNew(c *gin.Context) {
	newRequest(c).render(c, http.StatusOK, "places/new", gin.H{"title": "New place"})
}

func (a *API) PlacesCreate(c *gin.Context) {
	r := newRequest(c)

	var data placeBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", r.requestID))

		r.fail(c, "Invalid form submission", "/places/new")
		return
	}

	place := &model.Place{
		Title:       data.Title,
		Location:    data.Location,
		Description: data.Description,
	}

	err := a.Deps.Places.Create(c.Request.Context(), middleware.CurrentUser(c).ID, place)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			r.fail(c, sentence(err.Error()), "/places/new")
			return
		}

		c.Error(err)
		return
	}

	r.succeed(c, "Successfully made a new place!", "/places")
}
